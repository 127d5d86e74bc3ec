package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/vitrine-shop/vitrine/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}
	err = db.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.Brand{},
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	)
	if err != nil {
		t.Fatalf("migrate test db failed: %v", err)
	}
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T failed: %v", value, err)
	}
}

func money(t *testing.T, value string) models.Money {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse money %q failed: %v", value, err)
	}
	return models.NewMoneyFromDecimal(d)
}

func seedUser(t *testing.T, db *gorm.DB, email, address string) *models.User {
	t.Helper()
	user := &models.User{
		Email:                  email,
		DisplayName:            "Tester",
		DefaultShippingAddress: address,
		Status:                 "active",
	}
	mustCreate(t, db, user)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name, slug, price string, onSale bool, discount int) *models.Product {
	t.Helper()
	category := &models.Category{Slug: slug + "-cat", Name: "Category"}
	mustCreate(t, db, category)
	product := &models.Product{
		CategoryID:      category.ID,
		Slug:            slug,
		Name:            name,
		Price:           money(t, price),
		IsOnSale:        onSale,
		DiscountPercent: discount,
		IsActive:        true,
	}
	mustCreate(t, db, product)
	return product
}

func seedVariant(t *testing.T, db *gorm.DB, productID uint, color string, override string) *models.ProductVariant {
	t.Helper()
	variant := &models.ProductVariant{
		ProductID: productID,
		Color:     color,
		Stock:     100,
		IsActive:  true,
	}
	if override != "" {
		m := money(t, override)
		variant.PriceOverride = &m
	}
	mustCreate(t, db, variant)
	return variant
}

package main

import (
	"flag"
	"fmt"

	"github.com/vitrine-shop/vitrine/internal/config"
	"github.com/vitrine-shop/vitrine/internal/logger"
	"github.com/vitrine-shop/vitrine/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "配置文件路径")
	flag.Parse()

	// 连接数据库
	cfg, err := config.Load(configPath)
	if err != nil {
		panic(err)
	}
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加品牌
	brands := []models.Brand{
		{Slug: "aurora-audio", Name: "Aurora Audio", Logo: "https://images.unsplash.com/photo-1511379938547-c1f69419868d?w=200"},
		{Slug: "northwind", Name: "Northwind", Logo: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=200"},
		{Slug: "lumen-gear", Name: "Lumen Gear", Logo: "https://images.unsplash.com/photo-1519389950473-47ba0277781c?w=200"},
	}
	for _, brand := range brands {
		var existing models.Brand
		if err := models.DB.Where("slug = ?", brand.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&brand).Error; err != nil {
				stdLog.Printf("Failed to create brand %s: %v", brand.Slug, err)
			} else {
				stdLog.Printf("Created brand: %s", brand.Slug)
			}
		} else {
			stdLog.Printf("Brand already exists: %s", brand.Slug)
		}
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "electronics", Name: "Electronics", SortOrder: 300},
		{Slug: "lifestyle", Name: "Lifestyle", SortOrder: 200},
		{Slug: "accessories", Name: "Accessories", SortOrder: 100},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 读取品牌/分类ID
	brandIDs := map[string]uint{}
	var brandList []models.Brand
	if err := models.DB.Where("slug IN ?", []string{"aurora-audio", "northwind", "lumen-gear"}).Find(&brandList).Error; err != nil {
		stdLog.Printf("Failed to load brands: %v", err)
	}
	for _, brand := range brandList {
		brandIDs[brand.Slug] = brand.ID
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"electronics", "lifestyle", "accessories"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加商品
	products := []models.Product{
		{
			Slug:        "wireless-earphones",
			Name:        "Wireless Bluetooth Earphones",
			Description: "High quality sound, long battery life, comfortable to wear",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
			BrandID:     brandIDs["aurora-audio"],
			CategoryID:  categoryIDs["electronics"],
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800",
			}),
			SortOrder: 400,
			IsActive:  true,
		},
		{
			Slug:            "smart-watch",
			Name:            "Smart Watch",
			Description:     "Health monitoring, fitness tracking, message notifications",
			Price:           models.NewMoneyFromDecimal(decimal.NewFromFloat(199.99)),
			IsOnSale:        true,
			DiscountPercent: 20,
			BrandID:         brandIDs["lumen-gear"],
			CategoryID:      categoryIDs["electronics"],
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1579586337278-3befd40fd17a?w=800",
			}),
			SortOrder: 300,
			IsActive:  true,
		},
		{
			Slug:        "power-bank",
			Name:        "Portable Power Bank",
			Description: "High capacity, fast charging, multi-device compatible",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(49.99)),
			BrandID:     brandIDs["lumen-gear"],
			CategoryID:  categoryIDs["accessories"],
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=800",
			}),
			SortOrder: 200,
			IsActive:  true,
		},
		{
			Slug:        "backpack",
			Name:        "Multi-function Backpack",
			Description: "Large capacity, waterproof and anti-theft, USB charging port",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(79.99)),
			BrandID:     brandIDs["northwind"],
			CategoryID:  categoryIDs["lifestyle"],
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=800",
			}),
			SortOrder: 100,
			IsActive:  true,
		},
	}

	for _, prod := range products {
		if prod.CategoryID == 0 {
			stdLog.Printf("Skip product %s: category_id missing", prod.Slug)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("slug = ?", prod.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", prod.Slug)
			}
		} else {
			existing.Name = prod.Name
			existing.Description = prod.Description
			existing.Price = prod.Price
			existing.IsOnSale = prod.IsOnSale
			existing.DiscountPercent = prod.DiscountPercent
			existing.BrandID = prod.BrandID
			existing.CategoryID = prod.CategoryID
			existing.Images = prod.Images
			existing.SortOrder = prod.SortOrder
			existing.IsActive = prod.IsActive
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", prod.Slug, err)
			} else {
				stdLog.Printf("Updated product: %s", prod.Slug)
			}
		}
	}

	// 为商品补充颜色规格
	variantPlans := []struct {
		ProductSlug   string
		Color         string
		Stock         int
		PriceOverride *models.Money
		Image         string
	}{
		{ProductSlug: "wireless-earphones", Color: "black", Stock: 120, Image: "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800"},
		{ProductSlug: "wireless-earphones", Color: "white", Stock: 80, PriceOverride: moneyPtr(109.99), Image: "https://images.unsplash.com/photo-1572569511254-d8f925fe2cbb?w=800"},
		{ProductSlug: "smart-watch", Color: "midnight", Stock: 50, Image: "https://images.unsplash.com/photo-1579586337278-3befd40fd17a?w=800"},
		{ProductSlug: "smart-watch", Color: "silver", Stock: 35, PriceOverride: moneyPtr(219.99), Image: "https://images.unsplash.com/photo-1508685096489-7aacd43bd3b1?w=800"},
		{ProductSlug: "power-bank", Color: "graphite", Stock: 200, Image: "https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=800"},
		{ProductSlug: "backpack", Color: "navy", Stock: 60, Image: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=800"},
		{ProductSlug: "backpack", Color: "olive", Stock: 45, Image: "https://images.unsplash.com/photo-1622560480605-d83c853bc5c3?w=800"},
	}

	for _, plan := range variantPlans {
		var product models.Product
		if err := models.DB.Where("slug = ?", plan.ProductSlug).First(&product).Error; err != nil {
			stdLog.Printf("Skip variant %s/%s: product not found", plan.ProductSlug, plan.Color)
			continue
		}

		var existing models.ProductVariant
		if err := models.DB.Where("product_id = ? AND color = ?", product.ID, plan.Color).First(&existing).Error; err != nil {
			variant := models.ProductVariant{
				ProductID:     product.ID,
				Color:         plan.Color,
				Stock:         plan.Stock,
				PriceOverride: plan.PriceOverride,
				Image:         plan.Image,
				IsActive:      true,
			}
			if err := models.DB.Create(&variant).Error; err != nil {
				stdLog.Printf("Failed to create variant %s/%s: %v", plan.ProductSlug, plan.Color, err)
			} else {
				stdLog.Printf("Created variant: %s/%s", plan.ProductSlug, plan.Color)
			}
		} else {
			existing.Stock = plan.Stock
			existing.PriceOverride = plan.PriceOverride
			existing.Image = plan.Image
			existing.IsActive = true
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update variant %s/%s: %v", plan.ProductSlug, plan.Color, err)
			} else {
				stdLog.Printf("Updated variant: %s/%s", plan.ProductSlug, plan.Color)
			}
		}
	}

	// 添加演示用户
	users := []models.User{
		{Email: "demo@example.com", DisplayName: "Demo Shopper", DefaultShippingAddress: "1 Market Street, Springfield"},
		{Email: "reviewer@example.com", DisplayName: "Frequent Reviewer", DefaultShippingAddress: "42 Harbor Road, Lakeside"},
	}
	for _, user := range users {
		var existing models.User
		if err := models.DB.Where("email = ?", user.Email).First(&existing).Error; err != nil {
			if err := models.DB.Create(&user).Error; err != nil {
				stdLog.Printf("Failed to create user %s: %v", user.Email, err)
			} else {
				stdLog.Printf("Created user: %s", user.Email)
			}
		} else {
			stdLog.Printf("User already exists: %s", user.Email)
		}
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Brands")
	fmt.Println("- 3 Categories")
	fmt.Println("- 4 Products with color variants")
	fmt.Println("- 2 Demo users")
}

func moneyPtr(amount float64) *models.Money {
	m := models.NewMoneyFromDecimal(decimal.NewFromFloat(amount))
	return &m
}

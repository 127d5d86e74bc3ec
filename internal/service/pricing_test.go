package service

import (
	"testing"

	"github.com/vitrine-shop/vitrine/internal/models"

	"github.com/shopspring/decimal"
)

func mustMoney(t *testing.T, value string) models.Money {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse %q failed: %v", value, err)
	}
	return models.NewMoneyFromDecimal(d)
}

func TestEffectiveUnitPriceBase(t *testing.T) {
	product := &models.Product{Price: mustMoney(t, "1000")}
	got := EffectiveUnitPrice(product, nil)
	if got.String() != "1000.00" {
		t.Fatalf("expected 1000.00, got %s", got.String())
	}
}

func TestEffectiveUnitPriceSale(t *testing.T) {
	product := &models.Product{
		Price:           mustMoney(t, "1000"),
		IsOnSale:        true,
		DiscountPercent: 20,
	}
	got := EffectiveUnitPrice(product, nil)
	if got.String() != "800.00" {
		t.Fatalf("expected 800.00, got %s", got.String())
	}
}

func TestEffectiveUnitPriceVariantOverride(t *testing.T) {
	override := mustMoney(t, "750")
	product := &models.Product{
		Price:           mustMoney(t, "1000"),
		IsOnSale:        true,
		DiscountPercent: 20,
	}
	variant := &models.ProductVariant{PriceOverride: &override}
	got := EffectiveUnitPrice(product, variant)
	if got.String() != "600.00" {
		t.Fatalf("expected 600.00, got %s", got.String())
	}
}

func TestEffectiveUnitPriceIgnoresInvalidDiscount(t *testing.T) {
	for _, discount := range []int{0, -10, 101} {
		product := &models.Product{
			Price:           mustMoney(t, "500"),
			IsOnSale:        true,
			DiscountPercent: discount,
		}
		got := EffectiveUnitPrice(product, nil)
		if got.String() != "500.00" {
			t.Fatalf("discount=%d: expected 500.00, got %s", discount, got.String())
		}
	}
}

func TestEffectiveUnitPriceNoSaleIgnoresDiscount(t *testing.T) {
	product := &models.Product{
		Price:           mustMoney(t, "500"),
		IsOnSale:        false,
		DiscountPercent: 50,
	}
	got := EffectiveUnitPrice(product, nil)
	if got.String() != "500.00" {
		t.Fatalf("expected 500.00, got %s", got.String())
	}
}

func TestEffectiveUnitPriceRounding(t *testing.T) {
	product := &models.Product{
		Price:           mustMoney(t, "99.99"),
		IsOnSale:        true,
		DiscountPercent: 33,
	}
	// 99.99 * 0.67 = 66.9933 -> 66.99
	got := EffectiveUnitPrice(product, nil)
	if got.String() != "66.99" {
		t.Fatalf("expected 66.99, got %s", got.String())
	}
}

func TestLineTotal(t *testing.T) {
	got := LineTotal(mustMoney(t, "66.99"), 3)
	if got.String() != "200.97" {
		t.Fatalf("expected 200.97, got %s", got.String())
	}
}

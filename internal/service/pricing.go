package service

import (
	"github.com/vitrine-shop/vitrine/internal/models"

	"github.com/shopspring/decimal"
)

// EffectiveUnitPrice 计算规格当前生效单价
// 取值顺序：规格价（存在时）> 商品基础价；促销中再按折扣百分比降价，结果保留 2 位小数
func EffectiveUnitPrice(product *models.Product, variant *models.ProductVariant) models.Money {
	base := product.Price.Decimal
	if variant != nil && variant.PriceOverride != nil {
		base = variant.PriceOverride.Decimal
	}

	if product.IsOnSale && product.DiscountPercent > 0 && product.DiscountPercent <= 100 {
		factor := decimal.NewFromInt(int64(100 - product.DiscountPercent)).
			Div(decimal.NewFromInt(100))
		base = base.Mul(factor)
	}

	return models.NewMoneyFromDecimal(base)
}

// LineTotal 计算行小计（单价 × 数量，保留 2 位小数）
func LineTotal(unitPrice models.Money, quantity int) models.Money {
	return models.NewMoneyFromDecimal(
		unitPrice.Decimal.Mul(decimal.NewFromInt(int64(quantity))),
	)
}

package models

import (
	"time"
)

// CartItem 购物车项
// Price 是加入/变更时刻的快照（单价 × 数量），不随商品后续改价变化
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                     // 主键
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_variant" json:"cart_id"`     // 购物车ID
	VariantID uint      `gorm:"not null;uniqueIndex:idx_cart_variant" json:"variant_id"`  // 商品规格ID
	Quantity  int       `gorm:"not null" json:"quantity"`                                 // 数量
	Price     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`       // 行小计快照
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                                  // 更新时间

	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"` // 关联规格
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}

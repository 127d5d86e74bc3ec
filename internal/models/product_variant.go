package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariant 商品规格表（按颜色区分，可单独定价）
type ProductVariant struct {
	ID            uint           `gorm:"primarykey" json:"id"`                        // 主键
	ProductID     uint           `gorm:"not null;index" json:"product_id"`            // 商品ID
	Color         string         `gorm:"type:varchar(64);not null" json:"color"`      // 颜色标签
	Stock         int            `gorm:"not null;default:0" json:"stock"`             // 库存数量
	PriceOverride *Money         `gorm:"type:decimal(20,2)" json:"price_override"`    // 规格价格（为空时沿用商品基础价）
	Image         string         `gorm:"type:varchar(500)" json:"image"`              // 规格图片
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`         // 是否启用
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                     // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                  // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                              // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}

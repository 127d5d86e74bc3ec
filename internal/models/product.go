package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                       // 主键
	BrandID         uint           `gorm:"index" json:"brand_id"`                                      // 品牌ID
	CategoryID      uint           `gorm:"not null;index" json:"category_id"`                          // 分类ID
	Slug            string         `gorm:"uniqueIndex;not null" json:"slug"`                           // 唯一标识
	Name            string         `gorm:"not null" json:"name"`                                       // 商品名称
	Description     string         `gorm:"type:text" json:"description"`                               // 商品描述
	Price           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`         // 基础价格
	IsOnSale        bool           `gorm:"default:false;index" json:"is_on_sale"`                      // 是否促销中
	DiscountPercent int            `gorm:"not null;default:0" json:"discount_percent"`                 // 促销折扣（0-100）
	Images          StringArray    `gorm:"type:json" json:"images"`                                    // 图片数组
	IsActive        bool           `gorm:"default:true;index" json:"is_active"`                        // 是否上架
	SortOrder       int            `gorm:"default:0;index" json:"sort_order"`                          // 排序权重
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                                 // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间

	// 关联
	Brand    *Brand           `gorm:"foreignKey:BrandID" json:"brand,omitempty"`       // 品牌信息
	Category *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`  // 规格列表
	Reviews  []Review         `gorm:"foreignKey:ProductID" json:"reviews,omitempty"`   // 商品评价
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Brand 品牌表
type Brand struct {
	ID        uint           `gorm:"primarykey" json:"id"`             // 主键
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"` // 唯一标识
	Name      string         `gorm:"not null" json:"name"`             // 品牌名称
	Logo      string         `gorm:"type:varchar(500)" json:"logo"`    // 品牌 Logo 图片路径
	CreatedAt time.Time      `gorm:"index" json:"created_at"`          // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                   // 软删除时间
}

// TableName 指定表名
func (Brand) TableName() string {
	return "brands"
}

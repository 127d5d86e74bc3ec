package models

import (
	"time"
)

// Cart 购物车表（每个用户至多一个）
// TotalPrice 是派生缓存值，任何购物车项变更后必须等于 Σ item.Price
type Cart struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                      // 主键
	UserID     uint      `gorm:"not null;uniqueIndex" json:"user_id"`                       // 用户ID（1:1）
	TotalPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`  // 总价缓存
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                                // 更新时间

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // 购物车项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

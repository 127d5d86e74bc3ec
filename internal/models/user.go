package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID                     uint           `gorm:"primarykey" json:"id"`                        // 主键
	Email                  string         `gorm:"uniqueIndex;not null" json:"email"`           // 邮箱
	DisplayName            string         `gorm:"default:''" json:"display_name"`              // 昵称
	DefaultShippingAddress string         `gorm:"type:varchar(500)" json:"shipping_address"`   // 默认收货地址（结算缺省值）
	Status                 string         `gorm:"default:'active'" json:"status"`              // 账号状态
	CreatedAt              time.Time      `gorm:"index" json:"created_at"`                     // 创建时间
	UpdatedAt              time.Time      `json:"updated_at"`                                  // 更新时间
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`                              // 软删除时间

	Cart   *Cart   `gorm:"foreignKey:UserID" json:"cart,omitempty"`   // 购物车（1:1）
	Orders []Order `gorm:"foreignKey:UserID" json:"orders,omitempty"` // 历史订单
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

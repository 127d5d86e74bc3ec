package models

import (
	"time"
)

// OrderItem 订单项表
// 全部字段为下单时刻的反范式快照，后续商品/规格的修改或删除不影响历史订单
type OrderItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                    // 主键
	OrderID     uint      `gorm:"index;not null" json:"order_id"`                          // 订单ID
	ProductName string    `gorm:"not null" json:"product_name"`                            // 商品名称快照
	Color       string    `gorm:"type:varchar(64)" json:"color"`                           // 规格颜色快照
	Image       string    `gorm:"type:varchar(500)" json:"image"`                          // 图片快照
	UnitPrice   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"` // 单价快照
	Quantity    int       `gorm:"not null" json:"quantity"`                                // 数量
	LineTotal   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"line_total"` // 行小计快照
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                                 // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

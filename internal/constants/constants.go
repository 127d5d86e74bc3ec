package constants

// 订单状态
const (
	OrderStatusPending   = "pending"   // 待确认
	OrderStatusConfirmed = "confirmed" // 已确认
	OrderStatusShipped   = "shipped"   // 已发货
	OrderStatusDelivered = "delivered" // 已送达
	OrderStatusCancelled = "cancelled" // 已取消
)

// 支付状态
const (
	PaymentStatusUnpaid = "unpaid" // 未支付
	PaymentStatusPaid   = "paid"   // 已支付
)

// OrderStatuses 全部订单状态
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// PaymentStatuses 全部支付状态
var PaymentStatuses = []string{
	PaymentStatusUnpaid,
	PaymentStatusPaid,
}

// IsValidOrderStatus 校验订单状态
func IsValidOrderStatus(status string) bool {
	for _, candidate := range OrderStatuses {
		if candidate == status {
			return true
		}
	}
	return false
}

// IsValidPaymentStatus 校验支付状态
func IsValidPaymentStatus(status string) bool {
	for _, candidate := range PaymentStatuses {
		if candidate == status {
			return true
		}
	}
	return false
}

// 用户状态
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 支付网关回调事件类型
const (
	WebhookEventPaymentCompleted = "payment.completed" // 支付完成
)

// 异步任务类型
const (
	TaskEmailOrderReceived = "email:order_received" // 下单成功通知
	TaskEmailOrderStatus   = "email:order_status"   // 订单状态变更通知
	TaskEmailOrderCanceled = "email:order_canceled" // 订单取消通知
	TaskEmailAdminAlert    = "email:admin_alert"    // 管理员提醒
)

// 异步任务队列
const (
	QueueEmail = "email"
)

// 权限角色
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

package service

import "errors"

// 业务错误定义，由各 handler 映射为响应码
var (
	ErrQuantityInvalid         = errors.New("quantity must be greater than zero")
	ErrProductNotFound         = errors.New("product not found")
	ErrVariantNotFound         = errors.New("product variant not found")
	ErrCartItemNotFound        = errors.New("cart item not found")
	ErrCartEmpty               = errors.New("cart is empty")
	ErrShippingAddressMissing  = errors.New("shipping address is required")
	ErrCheckoutConflict        = errors.New("cart changed during checkout, please retry")
	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderCancelNotAllowed   = errors.New("order can no longer be cancelled")
	ErrOrderStatusInvalid      = errors.New("invalid order status")
	ErrPaymentStatusInvalid    = errors.New("invalid payment status")
	ErrWebhookSignatureInvalid = errors.New("webhook signature verification failed")
	ErrWebhookPayloadInvalid   = errors.New("webhook payload is malformed")
	ErrReviewRatingInvalid     = errors.New("rating must be between 1 and 5")
	ErrEmailDisabled           = errors.New("email notifications are disabled")
	ErrEmailSendFailed         = errors.New("email delivery failed")
)

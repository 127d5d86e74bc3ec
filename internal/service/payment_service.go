package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/vitrine-shop/vitrine/internal/cache"
	"github.com/vitrine-shop/vitrine/internal/constants"
	"github.com/vitrine-shop/vitrine/internal/logger"
	"github.com/vitrine-shop/vitrine/internal/metrics"
)

// WebhookEvent 支付网关回调事件
type WebhookEvent struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	Data      WebhookEventData `json:"data"`
}

// WebhookEventData 回调事件载荷
type WebhookEventData struct {
	UserID          uint   `json:"user_id"`
	ShippingAddress string `json:"shipping_address"`
}

// PaymentService 支付回调与对账逻辑
// 回调确认到账后把对应用户的购物车结算为已支付订单
type PaymentService struct {
	webhookSecret string
	orders        *OrderService
}

// NewPaymentService 创建支付服务
func NewPaymentService(webhookSecret string, orders *OrderService) *PaymentService {
	return &PaymentService{
		webhookSecret: webhookSecret,
		orders:        orders,
	}
}

// VerifySignature 校验回调签名（HMAC-SHA256 十六进制，常数时间比较）
func (s *PaymentService) VerifySignature(rawBody []byte, signature string) bool {
	if s.webhookSecret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(s.webhookSecret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignPayload 计算载荷签名（测试与对接调试用）
func (s *PaymentService) SignPayload(rawBody []byte) string {
	mac := hmac.New(sha256.New, []byte(s.webhookSecret))
	mac.Write(rawBody)
	return hex.EncodeToString(mac.Sum(nil))
}

// HandleGatewayWebhook 处理支付网关回调
// 验签失败返回错误让网关重试；重复投递、未知事件、购物车已结算均确认收到
func (s *PaymentService) HandleGatewayWebhook(ctx context.Context, rawBody []byte, signature string) error {
	if !s.VerifySignature(rawBody, signature) {
		logger.Warnw("webhook_signature_invalid")
		return ErrWebhookSignatureInvalid
	}

	var event WebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return ErrWebhookPayloadInvalid
	}
	if event.EventID == "" || event.Data.UserID == 0 {
		return ErrWebhookPayloadInvalid
	}

	if event.EventType != constants.WebhookEventPaymentCompleted {
		logger.Infow("webhook_event_ignored", "event_id", event.EventID, "event_type", event.EventType)
		return nil
	}

	first, err := cache.MarkWebhookEventProcessed(ctx, event.EventID)
	if err != nil {
		return err
	}
	if !first {
		logger.Infow("webhook_event_duplicate", "event_id", event.EventID, "user_id", event.Data.UserID)
		return nil
	}

	order, err := s.orders.Checkout(event.Data.UserID, event.Data.ShippingAddress, constants.PaymentStatusPaid)
	if errors.Is(err, ErrCartEmpty) {
		// 购物车已结清说明本次确认已处理过，重复投递确认收到即可
		logger.Infow("webhook_cart_already_settled", "event_id", event.EventID, "user_id", event.Data.UserID)
		return nil
	}
	if err != nil {
		// 释放事件标记，网关重试时可以重新对账
		if unmarkErr := cache.UnmarkWebhookEventProcessed(ctx, event.EventID); unmarkErr != nil {
			logger.Errorw("webhook_event_unmark_failed", "event_id", event.EventID, "error", unmarkErr)
		}
		logger.Warnw("webhook_checkout_failed", "event_id", event.EventID, "user_id", event.Data.UserID, "error", err)
		return err
	}

	metrics.PaymentConfirmed()
	logger.Infow("order_payment_confirmed",
		"event_id", event.EventID,
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"amount", order.TotalPrice.String(),
	)
	return nil
}

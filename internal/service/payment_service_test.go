package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/vitrine-shop/vitrine/internal/constants"
	"github.com/vitrine-shop/vitrine/internal/models"

	"gorm.io/gorm"
)

const testWebhookSecret = "test-webhook-secret"

func newPaymentService(db *gorm.DB) *PaymentService {
	return NewPaymentService(testWebhookSecret, newOrderService(db))
}

// seedPendingCart 准备一个带商品的购物车，返回用户
func seedPendingCart(t *testing.T, db *gorm.DB, email, address string) *models.User {
	t.Helper()
	cartSvc := newCartService(db)
	user := seedUser(t, db, email, address)
	product := seedProduct(t, db, "Speaker", "speaker-"+email, "500.00", false, 0)
	variant := seedVariant(t, db, product.ID, "black", "")
	if _, err := cartSvc.AddItem(user.ID, variant.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	return user
}

func webhookBody(t *testing.T, event WebhookEvent) []byte {
	t.Helper()
	body, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event failed: %v", err)
	}
	return body
}

func loadUserOrders(t *testing.T, db *gorm.DB, userID uint) []models.Order {
	t.Helper()
	var orders []models.Order
	if err := db.Where("user_id = ?", userID).Find(&orders).Error; err != nil {
		t.Fatalf("load orders failed: %v", err)
	}
	return orders
}

func TestVerifySignature(t *testing.T) {
	svc := NewPaymentService(testWebhookSecret, nil)
	body := []byte(`{"event_id":"evt_1"}`)

	if !svc.VerifySignature(body, svc.SignPayload(body)) {
		t.Fatalf("expected valid signature to verify")
	}
	if svc.VerifySignature(body, "deadbeef") {
		t.Fatalf("expected bogus signature to fail")
	}
	if svc.VerifySignature(body, "") {
		t.Fatalf("expected empty signature to fail")
	}

	unconfigured := NewPaymentService("", nil)
	if unconfigured.VerifySignature(body, unconfigured.SignPayload(body)) {
		t.Fatalf("expected verification to fail without a secret")
	}
}

func TestHandleGatewayWebhookFinalizesCartAsPaidOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)
	user := seedPendingCart(t, db, "paid@example.com", "1 Main Street")

	body := webhookBody(t, WebhookEvent{
		EventID:   "evt_paid_1",
		EventType: constants.WebhookEventPaymentCompleted,
		Data:      WebhookEventData{UserID: user.ID},
	})

	if err := svc.HandleGatewayWebhook(context.Background(), body, svc.SignPayload(body)); err != nil {
		t.Fatalf("webhook failed: %v", err)
	}

	orders := loadUserOrders(t, db, user.ID)
	if len(orders) != 1 {
		t.Fatalf("expected exactly one order, got %d", len(orders))
	}
	order := orders[0]
	if order.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("expected paid, got %s", order.PaymentStatus)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}
	if order.PaidAt == nil {
		t.Fatalf("expected paid_at to be set")
	}
	if order.TotalPrice.String() != "1000.00" {
		t.Fatalf("expected total 1000.00, got %s", order.TotalPrice.String())
	}
	if order.ShippingAddress != "1 Main Street" {
		t.Fatalf("expected default address, got %q", order.ShippingAddress)
	}

	cart, err := newCartService(db).GetCart(user.ID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart.Items) != 0 || cart.TotalPrice.String() != "0.00" {
		t.Fatalf("expected cart settled, got %d items total %s", len(cart.Items), cart.TotalPrice.String())
	}
}

func TestHandleGatewayWebhookUsesEventShippingAddress(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)
	user := seedPendingCart(t, db, "override@example.com", "1 Main Street")

	body := webhookBody(t, WebhookEvent{
		EventID:   "evt_override_1",
		EventType: constants.WebhookEventPaymentCompleted,
		Data:      WebhookEventData{UserID: user.ID, ShippingAddress: "12 Main St"},
	})

	if err := svc.HandleGatewayWebhook(context.Background(), body, svc.SignPayload(body)); err != nil {
		t.Fatalf("webhook failed: %v", err)
	}

	orders := loadUserOrders(t, db, user.ID)
	if len(orders) != 1 {
		t.Fatalf("expected exactly one order, got %d", len(orders))
	}
	if orders[0].ShippingAddress != "12 Main St" {
		t.Fatalf("expected event address, got %q", orders[0].ShippingAddress)
	}
}

func TestHandleGatewayWebhookRejectsBadSignature(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)
	user := seedPendingCart(t, db, "badsig@example.com", "1 Main Street")

	body := webhookBody(t, WebhookEvent{
		EventID:   "evt_badsig_1",
		EventType: constants.WebhookEventPaymentCompleted,
		Data:      WebhookEventData{UserID: user.ID},
	})

	err := svc.HandleGatewayWebhook(context.Background(), body, "not-a-signature")
	if !errors.Is(err, ErrWebhookSignatureInvalid) {
		t.Fatalf("expected ErrWebhookSignatureInvalid, got %v", err)
	}

	if orders := loadUserOrders(t, db, user.ID); len(orders) != 0 {
		t.Fatalf("no order may be created on bad signature, got %d", len(orders))
	}
}

func TestHandleGatewayWebhookDuplicateDelivery(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)
	user := seedPendingCart(t, db, "dup@example.com", "1 Main Street")

	body := webhookBody(t, WebhookEvent{
		EventID:   "evt_dup_1",
		EventType: constants.WebhookEventPaymentCompleted,
		Data:      WebhookEventData{UserID: user.ID},
	})
	signature := svc.SignPayload(body)

	if err := svc.HandleGatewayWebhook(context.Background(), body, signature); err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}

	// 相同事件 ID 重复投递必须确认收到且不再产生订单
	if err := svc.HandleGatewayWebhook(context.Background(), body, signature); err != nil {
		t.Fatalf("duplicate delivery should be acknowledged, got %v", err)
	}

	// 新事件 ID 但购物车已结清同样不再产生订单
	replay := webhookBody(t, WebhookEvent{
		EventID:   "evt_dup_2",
		EventType: constants.WebhookEventPaymentCompleted,
		Data:      WebhookEventData{UserID: user.ID},
	})
	if err := svc.HandleGatewayWebhook(context.Background(), replay, svc.SignPayload(replay)); err != nil {
		t.Fatalf("settled-cart redelivery should be acknowledged, got %v", err)
	}

	if orders := loadUserOrders(t, db, user.ID); len(orders) != 1 {
		t.Fatalf("expected exactly one order after redeliveries, got %d", len(orders))
	}
}

func TestHandleGatewayWebhookIgnoresOtherEvents(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)
	user := seedPendingCart(t, db, "other@example.com", "1 Main Street")

	body := webhookBody(t, WebhookEvent{
		EventID:   "evt_other_1",
		EventType: "payment.refunded",
		Data:      WebhookEventData{UserID: user.ID},
	})

	if err := svc.HandleGatewayWebhook(context.Background(), body, svc.SignPayload(body)); err != nil {
		t.Fatalf("unknown event type should be acknowledged, got %v", err)
	}

	if orders := loadUserOrders(t, db, user.ID); len(orders) != 0 {
		t.Fatalf("ignored events must not create orders, got %d", len(orders))
	}
}

func TestHandleGatewayWebhookMissingShippingAddress(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)
	user := seedPendingCart(t, db, "noaddr@example.com", "")

	body := webhookBody(t, WebhookEvent{
		EventID:   "evt_noaddr_1",
		EventType: constants.WebhookEventPaymentCompleted,
		Data:      WebhookEventData{UserID: user.ID},
	})

	err := svc.HandleGatewayWebhook(context.Background(), body, svc.SignPayload(body))
	if !errors.Is(err, ErrShippingAddressMissing) {
		t.Fatalf("expected ErrShippingAddressMissing, got %v", err)
	}

	if orders := loadUserOrders(t, db, user.ID); len(orders) != 0 {
		t.Fatalf("no order may be created without an address, got %d", len(orders))
	}
}

func TestHandleGatewayWebhookRetryAfterFailure(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)
	user := seedPendingCart(t, db, "retry@example.com", "")

	body := webhookBody(t, WebhookEvent{
		EventID:   "evt_retry_1",
		EventType: constants.WebhookEventPaymentCompleted,
		Data:      WebhookEventData{UserID: user.ID},
	})
	signature := svc.SignPayload(body)

	err := svc.HandleGatewayWebhook(context.Background(), body, signature)
	if !errors.Is(err, ErrShippingAddressMissing) {
		t.Fatalf("expected ErrShippingAddressMissing, got %v", err)
	}

	// 用户补全地址后，同一事件重试必须能完成对账，不得被当作重复投递
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("default_shipping_address", "1 Main Street").Error; err != nil {
		t.Fatalf("set address failed: %v", err)
	}

	if err := svc.HandleGatewayWebhook(context.Background(), body, signature); err != nil {
		t.Fatalf("retry after failure should reconcile, got %v", err)
	}

	orders := loadUserOrders(t, db, user.ID)
	if len(orders) != 1 {
		t.Fatalf("expected retry to create the order, got %d orders", len(orders))
	}
	if orders[0].PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("expected paid, got %s", orders[0].PaymentStatus)
	}
}

func TestHandleGatewayWebhookMalformedPayload(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)

	body := []byte(`{"event_id": ""}`)
	err := svc.HandleGatewayWebhook(context.Background(), body, svc.SignPayload(body))
	if !errors.Is(err, ErrWebhookPayloadInvalid) {
		t.Fatalf("expected ErrWebhookPayloadInvalid, got %v", err)
	}

	garbage := []byte(`not-json`)
	err = svc.HandleGatewayWebhook(context.Background(), garbage, svc.SignPayload(garbage))
	if !errors.Is(err, ErrWebhookPayloadInvalid) {
		t.Fatalf("expected ErrWebhookPayloadInvalid for garbage body, got %v", err)
	}

	// 缺少用户标识的事件无法对账
	body = webhookBody(t, WebhookEvent{
		EventID:   "evt_nouser_1",
		EventType: constants.WebhookEventPaymentCompleted,
	})
	err = svc.HandleGatewayWebhook(context.Background(), body, svc.SignPayload(body))
	if !errors.Is(err, ErrWebhookPayloadInvalid) {
		t.Fatalf("expected ErrWebhookPayloadInvalid without user_id, got %v", err)
	}
}

package service

import (
	"errors"
	"testing"

	"github.com/vitrine-shop/vitrine/internal/constants"
	"github.com/vitrine-shop/vitrine/internal/models"
	"github.com/vitrine-shop/vitrine/internal/repository"

	"gorm.io/gorm"
)

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewUserRepository(db),
		nil,
	)
}

func TestCheckoutCreatesOrderAndEmptiesCart(t *testing.T) {
	db := setupTestDB(t)
	cartSvc := newCartService(db)
	orderSvc := newOrderService(db)
	user := seedUser(t, db, "checkout@example.com", "1 Main Street")
	product := seedProduct(t, db, "Bookcase", "bookcase", "500.00", false, 0)
	variantA := seedVariant(t, db, product.ID, "oak", "")
	variantB := seedVariant(t, db, product.ID, "birch", "300.00")

	if _, err := cartSvc.AddItem(user.ID, variantA.ID, 2); err != nil {
		t.Fatalf("add A failed: %v", err)
	}
	if _, err := cartSvc.AddItem(user.ID, variantB.ID, 1); err != nil {
		t.Fatalf("add B failed: %v", err)
	}

	order, err := orderSvc.Checkout(user.ID, "", constants.PaymentStatusUnpaid)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if order.TotalPrice.String() != "1300.00" {
		t.Fatalf("expected total 1300.00, got %s", order.TotalPrice.String())
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if order.PaymentStatus != constants.PaymentStatusUnpaid {
		t.Fatalf("expected unpaid, got %s", order.PaymentStatus)
	}
	if order.ShippingAddress != "1 Main Street" {
		t.Fatalf("expected default address, got %q", order.ShippingAddress)
	}
	if order.OrderNo == "" {
		t.Fatalf("expected order number to be generated")
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}
	for _, item := range order.Items {
		if item.ProductName != "Bookcase" {
			t.Fatalf("expected product name snapshot, got %q", item.ProductName)
		}
	}

	cart, err := cartSvc.GetCart(user.ID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected cart emptied after checkout, got %d items", len(cart.Items))
	}
	if cart.TotalPrice.String() != "0.00" {
		t.Fatalf("expected cart total reset, got %s", cart.TotalPrice.String())
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	orderSvc := newOrderService(db)
	user := seedUser(t, db, "empty@example.com", "1 Main Street")

	if _, err := orderSvc.Checkout(user.ID, "", constants.PaymentStatusUnpaid); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestCheckoutMissingAddress(t *testing.T) {
	db := setupTestDB(t)
	cartSvc := newCartService(db)
	orderSvc := newOrderService(db)
	user := seedUser(t, db, "noaddress@example.com", "")
	product := seedProduct(t, db, "Stool", "stool", "80.00", false, 0)
	variant := seedVariant(t, db, product.ID, "black", "")

	if _, err := cartSvc.AddItem(user.ID, variant.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if _, err := orderSvc.Checkout(user.ID, "   ", constants.PaymentStatusUnpaid); !errors.Is(err, ErrShippingAddressMissing) {
		t.Fatalf("expected ErrShippingAddressMissing, got %v", err)
	}

	order, err := orderSvc.Checkout(user.ID, "7 Oak Avenue", constants.PaymentStatusUnpaid)
	if err != nil {
		t.Fatalf("checkout with explicit address failed: %v", err)
	}
	if order.ShippingAddress != "7 Oak Avenue" {
		t.Fatalf("expected explicit address, got %q", order.ShippingAddress)
	}
}

func TestCheckoutPaidSetsPaidAt(t *testing.T) {
	db := setupTestDB(t)
	cartSvc := newCartService(db)
	orderSvc := newOrderService(db)
	user := seedUser(t, db, "paid-checkout@example.com", "1 Main Street")
	product := seedProduct(t, db, "Desk", "desk", "600.00", false, 0)
	variant := seedVariant(t, db, product.ID, "walnut", "")

	if _, err := cartSvc.AddItem(user.ID, variant.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if _, err := orderSvc.Checkout(user.ID, "", "refunded"); !errors.Is(err, ErrPaymentStatusInvalid) {
		t.Fatalf("expected ErrPaymentStatusInvalid, got %v", err)
	}

	order, err := orderSvc.Checkout(user.ID, "", constants.PaymentStatusPaid)
	if err != nil {
		t.Fatalf("paid checkout failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if order.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("expected paid, got %s", order.PaymentStatus)
	}
	if order.PaidAt == nil {
		t.Fatalf("expected paid_at to be set")
	}
}

// conflictCartRepo 模拟结算期间购物车被并发修改（删除行数与条目数不一致）
type conflictCartRepo struct {
	repository.CartRepository
}

func (r *conflictCartRepo) WithTx(tx *gorm.DB) repository.CartRepository {
	return &conflictCartTxRepo{r.CartRepository.WithTx(tx)}
}

type conflictCartTxRepo struct {
	repository.CartRepository
}

func (r *conflictCartTxRepo) DeleteItemsByCartID(cartID uint) (int64, error) {
	return 0, nil
}

func TestCheckoutConflictRollsBack(t *testing.T) {
	db := setupTestDB(t)
	cartSvc := newCartService(db)
	user := seedUser(t, db, "conflict@example.com", "1 Main Street")
	product := seedProduct(t, db, "Mirror", "mirror", "220.00", false, 0)
	variant := seedVariant(t, db, product.ID, "silver", "")

	if _, err := cartSvc.AddItem(user.ID, variant.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	orderSvc := NewOrderService(
		db,
		repository.NewOrderRepository(db),
		&conflictCartRepo{repository.NewCartRepository(db)},
		repository.NewUserRepository(db),
		nil,
	)

	if _, err := orderSvc.Checkout(user.ID, "", constants.PaymentStatusUnpaid); !errors.Is(err, ErrCheckoutConflict) {
		t.Fatalf("expected ErrCheckoutConflict, got %v", err)
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected order creation rolled back, found %d orders", orderCount)
	}

	cart, err := cartSvc.GetCart(user.ID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected cart items untouched, got %d", len(cart.Items))
	}
}

func TestOrderSnapshotSurvivesPriceChange(t *testing.T) {
	db := setupTestDB(t)
	cartSvc := newCartService(db)
	orderSvc := newOrderService(db)
	user := seedUser(t, db, "snapshot@example.com", "1 Main Street")
	product := seedProduct(t, db, "Bench", "bench", "400.00", false, 0)
	variant := seedVariant(t, db, product.ID, "teak", "")

	if _, err := cartSvc.AddItem(user.ID, variant.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := orderSvc.Checkout(user.ID, "", constants.PaymentStatusUnpaid)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", money(t, "999.00")).Error; err != nil {
		t.Fatalf("reprice failed: %v", err)
	}

	reloaded, err := orderSvc.GetOrder(user.ID, order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if reloaded.TotalPrice.String() != "400.00" {
		t.Fatalf("expected frozen total 400.00, got %s", reloaded.TotalPrice.String())
	}
	if reloaded.Items[0].UnitPrice.String() != "400.00" {
		t.Fatalf("expected frozen unit price 400.00, got %s", reloaded.Items[0].UnitPrice.String())
	}
}

func TestCancelOrder(t *testing.T) {
	db := setupTestDB(t)
	cartSvc := newCartService(db)
	orderSvc := newOrderService(db)
	user := seedUser(t, db, "cancel@example.com", "1 Main Street")
	product := seedProduct(t, db, "Clock", "clock", "75.00", false, 0)
	variant := seedVariant(t, db, product.ID, "brass", "")

	if _, err := cartSvc.AddItem(user.ID, variant.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := orderSvc.Checkout(user.ID, "", constants.PaymentStatusUnpaid)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	cancelled, err := orderSvc.Cancel(user.ID, order.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled status, got %s", cancelled.Status)
	}

	// 重复取消应幂等成功
	again, err := orderSvc.Cancel(user.ID, order.ID)
	if err != nil {
		t.Fatalf("repeat cancel failed: %v", err)
	}
	if again.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled on repeat, got %s", again.Status)
	}
}

func TestCancelNotAllowedAfterConfirmation(t *testing.T) {
	db := setupTestDB(t)
	cartSvc := newCartService(db)
	orderSvc := newOrderService(db)
	user := seedUser(t, db, "shipped@example.com", "1 Main Street")
	product := seedProduct(t, db, "Frame", "frame", "45.00", false, 0)
	variant := seedVariant(t, db, product.ID, "gold", "")

	if _, err := cartSvc.AddItem(user.ID, variant.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := orderSvc.Checkout(user.ID, "", constants.PaymentStatusUnpaid)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if _, err := orderSvc.AdminUpdateStatus(order.ID, constants.OrderStatusConfirmed, ""); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if _, err := orderSvc.Cancel(user.ID, order.ID); !errors.Is(err, ErrOrderCancelNotAllowed) {
		t.Fatalf("expected ErrOrderCancelNotAllowed for confirmed order, got %v", err)
	}

	if _, err := orderSvc.AdminUpdateStatus(order.ID, constants.OrderStatusShipped, ""); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if _, err := orderSvc.Cancel(user.ID, order.ID); !errors.Is(err, ErrOrderCancelNotAllowed) {
		t.Fatalf("expected ErrOrderCancelNotAllowed for shipped order, got %v", err)
	}
}

func TestOrderOwnership(t *testing.T) {
	db := setupTestDB(t)
	cartSvc := newCartService(db)
	orderSvc := newOrderService(db)
	owner := seedUser(t, db, "orders-owner@example.com", "1 Main Street")
	intruder := seedUser(t, db, "orders-intruder@example.com", "2 Side Street")
	product := seedProduct(t, db, "Plant", "plant", "30.00", false, 0)
	variant := seedVariant(t, db, product.ID, "green", "")

	if _, err := cartSvc.AddItem(owner.ID, variant.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := orderSvc.Checkout(owner.ID, "", constants.PaymentStatusUnpaid)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if _, err := orderSvc.GetOrder(intruder.ID, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for foreign order, got %v", err)
	}
	if _, err := orderSvc.Cancel(intruder.ID, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on foreign cancel, got %v", err)
	}
}

func TestAdminUpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	cartSvc := newCartService(db)
	orderSvc := newOrderService(db)
	user := seedUser(t, db, "admin-status@example.com", "1 Main Street")
	product := seedProduct(t, db, "Light", "light", "55.00", false, 0)
	variant := seedVariant(t, db, product.ID, "warm", "")

	if _, err := cartSvc.AddItem(user.ID, variant.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := orderSvc.Checkout(user.ID, "", constants.PaymentStatusUnpaid)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	updated, err := orderSvc.AdminUpdateStatus(order.ID, constants.OrderStatusConfirmed, constants.PaymentStatusPaid)
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.Status != constants.OrderStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", updated.Status)
	}
	if updated.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("expected paid, got %s", updated.PaymentStatus)
	}
	if updated.PaidAt == nil {
		t.Fatalf("expected paid_at to be set")
	}

	if _, err := orderSvc.AdminUpdateStatus(order.ID, "teleported", ""); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}
	if _, err := orderSvc.AdminUpdateStatus(order.ID, "", "maybe"); !errors.Is(err, ErrPaymentStatusInvalid) {
		t.Fatalf("expected ErrPaymentStatusInvalid, got %v", err)
	}
}

func TestAdminDeleteOrder(t *testing.T) {
	db := setupTestDB(t)
	cartSvc := newCartService(db)
	orderSvc := newOrderService(db)
	user := seedUser(t, db, "admin-delete@example.com", "1 Main Street")
	product := seedProduct(t, db, "Candle", "candle", "15.00", false, 0)
	variant := seedVariant(t, db, product.ID, "white", "")

	if _, err := cartSvc.AddItem(user.ID, variant.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := orderSvc.Checkout(user.ID, "", constants.PaymentStatusUnpaid)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if err := orderSvc.AdminDelete(order.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}

	var orderCount, itemCount int64
	db.Unscoped().Model(&models.Order{}).Where("id = ?", order.ID).Count(&orderCount)
	db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount)
	if orderCount != 0 || itemCount != 0 {
		t.Fatalf("expected order and items removed, got orders=%d items=%d", orderCount, itemCount)
	}

	if err := orderSvc.AdminDelete(order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on repeat delete, got %v", err)
	}
}

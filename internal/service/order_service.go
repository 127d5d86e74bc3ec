package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/vitrine-shop/vitrine/internal/constants"
	"github.com/vitrine-shop/vitrine/internal/logger"
	"github.com/vitrine-shop/vitrine/internal/metrics"
	"github.com/vitrine-shop/vitrine/internal/models"
	"github.com/vitrine-shop/vitrine/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单业务逻辑
type OrderService struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	userRepo  repository.UserRepository
	notifier  *Notifier
}

// NewOrderService 创建订单服务
func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository, cartRepo repository.CartRepository, userRepo repository.UserRepository, notifier *Notifier) *OrderService {
	return &OrderService{
		db:        db,
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// Checkout 结算购物车生成订单
// 订单创建、购物车清空、总价冻结在同一事务内完成，全部成功或全部回滚
// paymentStatus 区分直接下单（unpaid）与支付回调补单（paid）
func (s *OrderService) Checkout(userID uint, shippingAddress string, paymentStatus string) (*models.Order, error) {
	if paymentStatus == "" {
		paymentStatus = constants.PaymentStatusUnpaid
	}
	if !constants.IsValidPaymentStatus(paymentStatus) {
		return nil, ErrPaymentStatusInvalid
	}

	cart, err := s.cartRepo.GetByUserWithItems(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	address := strings.TrimSpace(shippingAddress)
	if address == "" {
		user, err := s.userRepo.GetByID(userID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			address = strings.TrimSpace(user.DefaultShippingAddress)
		}
	}
	if address == "" {
		return nil, ErrShippingAddressMissing
	}

	orderItems, totalPrice := assembleOrderItems(cart.Items)

	order := &models.Order{
		OrderNo:         generateOrderNo(),
		UserID:          userID,
		Status:          constants.OrderStatusPending,
		PaymentStatus:   paymentStatus,
		TotalPrice:      totalPrice,
		ShippingAddress: address,
		Items:           orderItems,
	}
	if paymentStatus == constants.PaymentStatusPaid {
		now := time.Now()
		order.PaidAt = &now
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		if err := orderRepo.Create(order); err != nil {
			return err
		}

		deleted, err := cartRepo.DeleteItemsByCartID(cart.ID)
		if err != nil {
			return err
		}
		// 结算期间购物车被并发修改时放弃本次结算
		if deleted != int64(len(cart.Items)) {
			return ErrCheckoutConflict
		}

		return cartRepo.UpdateTotal(cart.ID, models.NewMoneyFromInt(0))
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_created",
		"user_id", userID,
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"payment_status", order.PaymentStatus,
		"total_price", order.TotalPrice.String(),
		"item_count", len(order.Items),
	)

	metrics.OrderCreated()
	s.notifier.OrderReceived(order)
	s.notifier.AdminAlert(
		fmt.Sprintf("New order %s", order.OrderNo),
		fmt.Sprintf("Order %s was placed with %d item(s) totalling %s (payment: %s).",
			order.OrderNo, len(order.Items), order.TotalPrice.String(), order.PaymentStatus),
	)
	return order, nil
}

// GetOrder 查询用户订单详情
func (s *OrderService) GetOrder(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders 分页查询用户订单
func (s *OrderService) ListOrders(userID uint, pagination repository.Pagination) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(userID, pagination)
}

// Cancel 用户取消订单
// 仅待处理订单可取消；重复取消视为幂等成功
func (s *OrderService) Cancel(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if order.Status == constants.OrderStatusCancelled {
		return order, nil
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderCancelNotAllowed
	}

	now := time.Now()
	order.Status = constants.OrderStatusCancelled
	order.CanceledAt = &now
	if err := s.orderRepo.UpdateFields(order.ID, map[string]interface{}{
		"status":      constants.OrderStatusCancelled,
		"canceled_at": now,
	}); err != nil {
		return nil, err
	}

	logger.Infow("order_cancelled", "user_id", userID, "order_id", order.ID, "order_no", order.OrderNo)
	s.notifier.OrderCanceled(order)
	return order, nil
}

// AdminListOrders 管理端分页查询订单
func (s *OrderService) AdminListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// AdminGetOrder 管理端查询订单详情
func (s *OrderService) AdminGetOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// AdminUpdateStatus 管理端更新订单状态与支付状态，空串表示不更新对应字段
func (s *OrderService) AdminUpdateStatus(orderID uint, status, paymentStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	fields := map[string]interface{}{}
	now := time.Now()

	if status != "" {
		if !constants.IsValidOrderStatus(status) {
			return nil, ErrOrderStatusInvalid
		}
		fields["status"] = status
		if status == constants.OrderStatusCancelled && order.CanceledAt == nil {
			fields["canceled_at"] = now
		}
	}
	if paymentStatus != "" {
		if !constants.IsValidPaymentStatus(paymentStatus) {
			return nil, ErrPaymentStatusInvalid
		}
		fields["payment_status"] = paymentStatus
		if paymentStatus == constants.PaymentStatusPaid && order.PaidAt == nil {
			fields["paid_at"] = now
		}
	}
	if len(fields) == 0 {
		return order, nil
	}

	if err := s.orderRepo.UpdateFields(order.ID, fields); err != nil {
		return nil, err
	}

	updated, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	logger.Infow("order_status_updated",
		"order_id", orderID,
		"status", updated.Status,
		"payment_status", updated.PaymentStatus,
	)

	if status != "" && status != order.Status {
		s.notifier.OrderStatusChanged(updated)
	}
	return updated, nil
}

// AdminDelete 管理端物理删除订单
func (s *OrderService) AdminDelete(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if err := s.orderRepo.HardDelete(orderID); err != nil {
		return err
	}
	logger.Warnw("order_deleted", "order_id", orderID, "order_no", order.OrderNo)
	return nil
}

// assembleOrderItems 把购物车条目转换为订单项快照并累计总价
// 单价由行小计反推（行小计 ÷ 数量，保留 2 位小数），行小计原样继承
func assembleOrderItems(cartItems []models.CartItem) ([]models.OrderItem, models.Money) {
	orderItems := make([]models.OrderItem, 0, len(cartItems))
	total := decimal.Zero

	for _, item := range cartItems {
		unitPrice := item.Price.Decimal
		if item.Quantity > 0 {
			unitPrice = item.Price.Decimal.Div(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		}

		orderItem := models.OrderItem{
			ProductName: "",
			Quantity:    item.Quantity,
			UnitPrice:   models.NewMoneyFromDecimal(unitPrice),
			LineTotal:   item.Price,
		}
		if item.Variant != nil {
			orderItem.Color = item.Variant.Color
			orderItem.Image = item.Variant.Image
			if item.Variant.Product != nil {
				orderItem.ProductName = item.Variant.Product.Name
				if orderItem.Image == "" {
					orderItem.Image = item.Variant.Product.Images.First()
				}
			}
		}

		orderItems = append(orderItems, orderItem)
		total = total.Add(item.Price.Decimal)
	}

	return orderItems, models.NewMoneyFromDecimal(total)
}

// generateOrderNo 生成订单编号：日期 + 随机后缀
func generateOrderNo() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:10]
	return fmt.Sprintf("VO%s%s", time.Now().Format("20060102"), suffix)
}

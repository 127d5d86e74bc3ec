package service

import (
	"github.com/vitrine-shop/vitrine/internal/logger"
	"github.com/vitrine-shop/vitrine/internal/models"
	"github.com/vitrine-shop/vitrine/internal/queue"
	"github.com/vitrine-shop/vitrine/internal/repository"

	"github.com/hibiken/asynq"
)

// Notifier 订单事件通知分发
// 通知失败只记录日志，绝不影响主流程；nil 接收者表示通知被关闭
type Notifier struct {
	queueClient *queue.Client
	email       *EmailService
	userRepo    repository.UserRepository
}

// NewNotifier 创建通知分发器
func NewNotifier(queueClient *queue.Client, email *EmailService, userRepo repository.UserRepository) *Notifier {
	return &Notifier{
		queueClient: queueClient,
		email:       email,
		userRepo:    userRepo,
	}
}

// OrderReceived 下单成功通知
func (n *Notifier) OrderReceived(order *models.Order) {
	if n == nil || order == nil {
		return
	}
	email := n.resolveUserEmail(order)
	if email == "" {
		return
	}
	payload := queue.OrderEmailPayload{
		OrderID:   order.ID,
		OrderNo:   order.OrderNo,
		UserEmail: email,
	}
	if n.queueClient.Enabled() {
		task, err := queue.NewOrderReceivedTask(payload)
		if err == nil {
			n.enqueue(task, order.OrderNo)
			return
		}
	}
	n.dispatch(func() error { return n.email.SendOrderReceived(email, order) }, order.OrderNo)
}

// OrderStatusChanged 订单状态变更通知
func (n *Notifier) OrderStatusChanged(order *models.Order) {
	if n == nil || order == nil {
		return
	}
	email := n.resolveUserEmail(order)
	if email == "" {
		return
	}
	payload := queue.OrderEmailPayload{
		OrderID:   order.ID,
		OrderNo:   order.OrderNo,
		UserEmail: email,
		Status:    order.Status,
	}
	if n.queueClient.Enabled() {
		task, err := queue.NewOrderStatusTask(payload)
		if err == nil {
			n.enqueue(task, order.OrderNo)
			return
		}
	}
	n.dispatch(func() error { return n.email.SendOrderStatus(email, order) }, order.OrderNo)
}

// OrderCanceled 订单取消通知
func (n *Notifier) OrderCanceled(order *models.Order) {
	if n == nil || order == nil {
		return
	}
	email := n.resolveUserEmail(order)
	if email == "" {
		return
	}
	payload := queue.OrderEmailPayload{
		OrderID:   order.ID,
		OrderNo:   order.OrderNo,
		UserEmail: email,
	}
	if n.queueClient.Enabled() {
		task, err := queue.NewOrderCanceledTask(payload)
		if err == nil {
			n.enqueue(task, order.OrderNo)
			return
		}
	}
	n.dispatch(func() error { return n.email.SendOrderCanceled(email, order) }, order.OrderNo)
}

// AdminAlert 管理员提醒
func (n *Notifier) AdminAlert(subject, body string) {
	if n == nil {
		return
	}
	if n.queueClient.Enabled() {
		task, err := queue.NewAdminAlertTask(queue.AdminAlertPayload{Subject: subject, Body: body})
		if err == nil {
			n.enqueue(task, "")
			return
		}
	}
	n.dispatch(func() error { return n.email.SendAdminAlert(subject, body) }, "")
}

func (n *Notifier) resolveUserEmail(order *models.Order) string {
	if order.User != nil && order.User.Email != "" {
		return order.User.Email
	}
	if n.userRepo == nil {
		return ""
	}
	user, err := n.userRepo.GetByID(order.UserID)
	if err != nil || user == nil {
		return ""
	}
	return user.Email
}

func (n *Notifier) enqueue(task *asynq.Task, orderNo string) {
	if err := n.queueClient.Enqueue(task); err != nil {
		logger.Warnw("notify_enqueue_failed", "order_no", orderNo, "error", err)
	}
}

// dispatch 队列不可用时直接异步发送
func (n *Notifier) dispatch(send func() error, orderNo string) {
	if n.email == nil || !n.email.Enabled() {
		return
	}
	go func() {
		if err := send(); err != nil && err != ErrEmailDisabled {
			logger.Warnw("notify_send_failed", "order_no", orderNo, "error", err)
		}
	}()
}

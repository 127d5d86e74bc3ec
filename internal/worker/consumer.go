package worker

import (
	"context"
	"encoding/json"

	"github.com/vitrine-shop/vitrine/internal/constants"
	"github.com/vitrine-shop/vitrine/internal/logger"
	"github.com/vitrine-shop/vitrine/internal/models"
	"github.com/vitrine-shop/vitrine/internal/provider"
	"github.com/vitrine-shop/vitrine/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{Container: c}
}

// Register 注册任务处理器
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(constants.TaskEmailOrderReceived, c.handleOrderReceivedEmail)
	mux.HandleFunc(constants.TaskEmailOrderStatus, c.handleOrderStatusEmail)
	mux.HandleFunc(constants.TaskEmailOrderCanceled, c.handleOrderCanceledEmail)
	mux.HandleFunc(constants.TaskEmailAdminAlert, c.handleAdminAlertEmail)
}

// loadOrderForEmail 解析载荷并加载订单与收件人
func (c *Consumer) loadOrderForEmail(task *asynq.Task, event string) (*models.Order, string, error) {
	var payload queue.OrderEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_email_unmarshal_failed", "event", event, "error", err)
		return nil, "", err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_email_skip_invalid_payload", "event", event)
		return nil, "", nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_email_fetch_order_failed", "event", event, "order_id", payload.OrderID, "error", err)
		return nil, "", err
	}
	if order == nil {
		logger.Debugw("worker_email_skip_order_not_found", "event", event, "order_id", payload.OrderID)
		return nil, "", nil
	}

	receiver := payload.UserEmail
	if receiver == "" {
		user, err := c.UserRepo.GetByID(order.UserID)
		if err != nil {
			logger.Warnw("worker_email_fetch_user_failed", "event", event, "order_id", order.ID, "error", err)
			return nil, "", err
		}
		if user != nil {
			receiver = user.Email
		}
	}
	if receiver == "" {
		logger.Debugw("worker_email_skip_empty_receiver", "event", event, "order_id", order.ID)
		return nil, "", nil
	}
	return order, receiver, nil
}

func (c *Consumer) handleOrderReceivedEmail(_ context.Context, task *asynq.Task) error {
	order, receiver, err := c.loadOrderForEmail(task, "order_received")
	if err != nil || order == nil {
		return err
	}
	if err := c.EmailService.SendOrderReceived(receiver, order); err != nil {
		logger.Warnw("worker_order_received_email_failed", "order_no", order.OrderNo, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	order, receiver, err := c.loadOrderForEmail(task, "order_status")
	if err != nil || order == nil {
		return err
	}
	if err := c.EmailService.SendOrderStatus(receiver, order); err != nil {
		logger.Warnw("worker_order_status_email_failed", "order_no", order.OrderNo, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderCanceledEmail(_ context.Context, task *asynq.Task) error {
	order, receiver, err := c.loadOrderForEmail(task, "order_canceled")
	if err != nil || order == nil {
		return err
	}
	if err := c.EmailService.SendOrderCanceled(receiver, order); err != nil {
		logger.Warnw("worker_order_canceled_email_failed", "order_no", order.OrderNo, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleAdminAlertEmail(_ context.Context, task *asynq.Task) error {
	var payload queue.AdminAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_admin_alert_unmarshal_failed", "error", err)
		return err
	}
	if err := c.EmailService.SendAdminAlert(payload.Subject, payload.Body); err != nil {
		logger.Warnw("worker_admin_alert_email_failed", "subject", payload.Subject, "error", err)
		return err
	}
	return nil
}

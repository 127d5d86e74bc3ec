package queue

import (
	"encoding/json"

	"github.com/vitrine-shop/vitrine/internal/constants"

	"github.com/hibiken/asynq"
)

// OrderEmailPayload 订单相关邮件任务载荷
type OrderEmailPayload struct {
	OrderID   uint   `json:"order_id"`
	OrderNo   string `json:"order_no"`
	UserEmail string `json:"user_email"`
	Status    string `json:"status,omitempty"`
}

// AdminAlertPayload 管理员提醒任务载荷
type AdminAlertPayload struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewOrderReceivedTask 创建下单成功通知任务
func NewOrderReceivedTask(payload OrderEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskEmailOrderReceived, data, asynq.Queue(constants.QueueEmail)), nil
}

// NewOrderStatusTask 创建订单状态变更通知任务
func NewOrderStatusTask(payload OrderEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskEmailOrderStatus, data, asynq.Queue(constants.QueueEmail)), nil
}

// NewOrderCanceledTask 创建订单取消通知任务
func NewOrderCanceledTask(payload OrderEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskEmailOrderCanceled, data, asynq.Queue(constants.QueueEmail)), nil
}

// NewAdminAlertTask 创建管理员提醒任务
func NewAdminAlertTask(payload AdminAlertPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskEmailAdminAlert, data, asynq.Queue(constants.QueueEmail)), nil
}

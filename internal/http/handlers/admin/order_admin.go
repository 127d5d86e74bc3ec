package admin

import (
	"strconv"

	"github.com/vitrine-shop/vitrine/internal/http/handlers/shared"
	"github.com/vitrine-shop/vitrine/internal/http/response"
	"github.com/vitrine-shop/vitrine/internal/repository"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 更新订单状态请求，空字段表示不变更
type UpdateOrderStatusRequest struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// ListOrders 订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)

	filter := repository.OrderListFilter{
		UserID:        uint(userID),
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		OrderNo:       c.Query("order_no"),
		Pagination:    repository.Pagination{Page: page, PageSize: pageSize},
	}

	orders, total, err := h.OrderService.AdminListOrders(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list orders failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"orders": orders}, response.BuildPagination(page, pageSize, total))
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.AdminGetOrder(orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus 更新订单状态/支付状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if req.Status == "" && req.PaymentStatus == "" {
		respondError(c, response.CodeBadRequest, "nothing to update", nil)
		return
	}

	order, err := h.OrderService.AdminUpdateStatus(orderID, req.Status, req.PaymentStatus)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// DeleteOrder 物理删除订单
func (h *Handler) DeleteOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.OrderService.AdminDelete(orderID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "order deleted", nil)
}

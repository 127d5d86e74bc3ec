package public

import (
	"strconv"

	"github.com/vitrine-shop/vitrine/internal/constants"
	"github.com/vitrine-shop/vitrine/internal/http/handlers/shared"
	"github.com/vitrine-shop/vitrine/internal/http/response"
	"github.com/vitrine-shop/vitrine/internal/repository"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 结算请求
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address"`
}

// Checkout 结算购物车生成订单
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "invalid request body", err)
			return
		}
	}

	order, err := h.OrderService.Checkout(uid, req.ShippingAddress, constants.PaymentStatusUnpaid)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, order)
}

// ListOrders 订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, pageSize := shared.ParsePagination(c)
	orders, total, err := h.OrderService.ListOrders(uid, repository.Pagination{Page: page, PageSize: pageSize})
	if err != nil {
		respondError(c, response.CodeInternal, "list orders failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"orders": orders}, response.BuildPagination(page, pageSize, total))
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}

	order, svcErr := h.OrderService.GetOrder(uid, uint(orderID))
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	response.Success(c, order)
}

// CancelOrder 取消订单
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}

	order, svcErr := h.OrderService.Cancel(uid, uint(orderID))
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	response.Success(c, order)
}

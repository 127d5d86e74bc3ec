package public

import (
	"strconv"

	"github.com/vitrine-shop/vitrine/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 添加购物车项请求
type AddCartItemRequest struct {
	VariantID uint `json:"variant_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest 修改购物车项请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	cart, err := h.CartService.GetCart(uid)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, cart)
}

// AddCartItem 添加商品到购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	cart, err := h.CartService.AddItem(uid, req.VariantID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, cart)
}

// UpdateCartItem 修改购物车项数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid cart item id", nil)
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	cart, err := h.CartService.UpdateItemQuantity(uid, uint(itemID), req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, cart)
}

// RemoveCartItem 删除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid cart item id", nil)
		return
	}

	cart, err := h.CartService.RemoveItem(uid, uint(itemID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, cart)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.CartService.Clear(uid); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "cart cleared", nil)
}

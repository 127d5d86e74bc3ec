package public

import (
	"errors"
	"io"
	"net/http"

	"github.com/vitrine-shop/vitrine/internal/http/handlers/shared"
	"github.com/vitrine-shop/vitrine/internal/service"

	"github.com/gin-gonic/gin"
)

const gatewaySignatureHeader = "X-Gateway-Signature"

// PaymentWebhook 支付网关回调入口
// 网关依据 HTTP 状态码判断是否重试，这里不走统一响应包装
func (h *Handler) PaymentWebhook(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "read body failed")
		return
	}

	signature := c.GetHeader(gatewaySignatureHeader)
	err = h.PaymentService.HandleGatewayWebhook(c.Request.Context(), rawBody, signature)
	switch {
	case err == nil:
		c.String(http.StatusOK, "ok")
	case errors.Is(err, service.ErrWebhookSignatureInvalid):
		c.String(http.StatusUnauthorized, "invalid signature")
	case errors.Is(err, service.ErrWebhookPayloadInvalid):
		c.String(http.StatusBadRequest, "invalid payload")
	case errors.Is(err, service.ErrShippingAddressMissing):
		c.String(http.StatusBadRequest, "no shipping address on file")
	default:
		shared.RequestLog(c).Errorw("payment_webhook_failed", "error", err)
		c.String(http.StatusInternalServerError, "internal error")
	}
}

package admin

import (
	"errors"
	"strconv"

	"github.com/vitrine-shop/vitrine/internal/http/handlers/shared"
	"github.com/vitrine-shop/vitrine/internal/http/response"
	"github.com/vitrine-shop/vitrine/internal/service"

	"github.com/gin-gonic/gin"
)

// getAdminID 从上下文读取当前管理员ID
func getAdminID(c *gin.Context) (uint, bool) {
	return shared.GetContextUint(c, "admin_id")
}

// parseIDParam 解析路径中的数字ID
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}

func respondError(c *gin.Context, code int, msg string, err error) {
	shared.RespondError(c, code, msg, err)
}

// respondServiceError 将业务错误映射为响应码
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderStatusInvalid),
		errors.Is(err, service.ErrPaymentStatusInvalid):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrVariantNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		respondError(c, response.CodeNotFound, err.Error(), nil)
	default:
		respondError(c, response.CodeInternal, "internal error", err)
	}
}

package public

import (
	"errors"

	"github.com/vitrine-shop/vitrine/internal/http/handlers/shared"
	"github.com/vitrine-shop/vitrine/internal/http/response"
	"github.com/vitrine-shop/vitrine/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	shared.RespondError(c, code, msg, err)
}

// respondServiceError 将业务错误映射为响应码
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrQuantityInvalid),
		errors.Is(err, service.ErrShippingAddressMissing),
		errors.Is(err, service.ErrCartEmpty),
		errors.Is(err, service.ErrReviewRatingInvalid):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrVariantNotFound),
		errors.Is(err, service.ErrCartItemNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		respondError(c, response.CodeNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrCheckoutConflict):
		respondError(c, response.CodeConflict, err.Error(), nil)
	case errors.Is(err, service.ErrOrderCancelNotAllowed):
		respondError(c, response.CodeForbidden, err.Error(), nil)
	default:
		respondError(c, response.CodeInternal, "internal error", err)
	}
}

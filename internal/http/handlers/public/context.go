package public

import (
	"github.com/vitrine-shop/vitrine/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// getUserID 从上下文读取当前登录用户ID
func getUserID(c *gin.Context) (uint, bool) {
	return shared.GetContextUint(c, "user_id")
}

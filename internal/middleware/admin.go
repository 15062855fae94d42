package middleware

import (
	"survey-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware 管理员权限中间件，需在 AuthMiddleware 之后
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			utils.Forbidden(c, "需要管理员权限")
			c.Abort()
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"survey-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// 上下文中的键
const (
	ContextUsername = "username"
	ContextRole     = "role"
)

// AuthMiddleware JWT认证中间件
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "未认证")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Unauthorized(c, "无效的认证格式")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			c.Header("WWW-Authenticate", `Bearer error="invalid_token"`)
			utils.ErrorResponse(c, http.StatusUnauthorized, "Token无效或已过期")
			c.Abort()
			return
		}

		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// GetUsername 从上下文获取用户名
func GetUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get(ContextUsername)
	if !exists {
		return "", false
	}
	s, ok := username.(string)
	return s, ok
}

// IsAdmin 从上下文判断是否为管理员
func IsAdmin(c *gin.Context) bool {
	return c.GetString(ContextRole) == utils.RoleAdmin
}

package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/context"
	"github.com/portafy/portafy/pkg/internal/vault"
)

// SessionMiddleware 将会话管理器注入到请求上下文中.
func SessionMiddleware(mgr *vault.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithSessionManager(c.Request.Context(), mgr)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

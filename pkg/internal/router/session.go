package router

import (
	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/internal/handle"
)

// RegisterSessionRoutes 注册会话相关路由.
func RegisterSessionRoutes(g *gin.RouterGroup) {
	sessionRoutes := g.Group("/session")
	{
		sessionRoutes.GET("", handle.SessionInfo)
		sessionRoutes.POST("/signout", handle.SignOut)
	}
}

package router

import (
	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/internal/handle"
)

// RegisterSharesRoutes 注册分享链接相关路由.
func RegisterSharesRoutes(g *gin.RouterGroup) {
	sharesRoutes := g.Group("/shares")
	{
		sharesRoutes.GET("", handle.ListShares)
		sharesRoutes.POST("", handle.CreateShare)
		sharesRoutes.DELETE("/:id", handle.RevokeShare)
	}
}

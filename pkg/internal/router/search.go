package router

import (
	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/internal/handle"
)

// RegisterSearchRoutes 注册搜索相关路由.
func RegisterSearchRoutes(g *gin.RouterGroup) {
	g.GET("/search", handle.Search)
}

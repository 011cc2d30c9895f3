// Package router 管理路由配置，将路径和处理器绑定到 gin 引擎.
// 处理器的实现由 pkg/internal/handle 提供.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/internal/handle"
)

// RegisterAPIRoutes 将全部业务路由注册到传入的路由组（假定上层会用 g := e.Group("/api/v1")）.
func RegisterAPIRoutes(g *gin.RouterGroup) {
	RegisterFilesRoutes(g)
	RegisterFoldersRoutes(g)
	RegisterItemsRoutes(g)
	RegisterTrashRoutes(g)
	RegisterSearchRoutes(g)
	RegisterProfileRoutes(g)
	RegisterSharesRoutes(g)
	RegisterStatsRoutes(g)
	RegisterSessionRoutes(g)
}

// RegisterPublicRoutes 注册无需认证的公开路由.
func RegisterPublicRoutes(e *gin.Engine) {
	// 分享链接解析，凭 share id 访问
	e.GET("/s/:id", handle.ResolveShare)
	e.GET("/healthz", handle.Healthz)
}

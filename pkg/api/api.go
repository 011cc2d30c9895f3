// Package api 提供将业务路由注册到 gin 引擎的入口，便于测试或嵌入其它服务.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/internal/router"
)

// RegisterGroup 注册全部业务路由到传入的 gin 引擎.
func RegisterGroup(e *gin.Engine) *gin.Engine {
	router.RegisterPublicRoutes(e)
	router.RegisterAPIRoutes(e.Group("/api/v1"))

	return e
}

package router

import (
	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/internal/handle"
)

// RegisterTrashRoutes 注册回收站相关路由.
func RegisterTrashRoutes(g *gin.RouterGroup) {
	trashRoutes := g.Group("/trash")
	{
		trashRoutes.GET("", handle.ListTrash)
		// 清空回收站
		trashRoutes.DELETE("", handle.EmptyTrash)

		singleGroup := trashRoutes.Group("/:id")
		{
			// 还原到工作区
			singleGroup.POST("/restore", handle.RestoreTrash)
			// 永久删除
			singleGroup.DELETE("", handle.DeleteTrash)
		}
	}
}

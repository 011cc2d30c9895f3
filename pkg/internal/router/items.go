package router

import (
	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/internal/handle"
)

// RegisterItemsRoutes 注册文件/文件夹通用操作相关路由.
func RegisterItemsRoutes(g *gin.RouterGroup) {
	itemsRoutes := g.Group("/items")
	{
		singleGroup := itemsRoutes.Group("/:id")
		{
			// 收藏/取消收藏
			singleGroup.POST("/star", handle.StarItem)
			// 重命名
			singleGroup.POST("/rename", handle.RenameItem)
			// 移动到目标文件夹
			singleGroup.POST("/move", handle.MoveItem)
			// 删除（移入回收站）
			singleGroup.DELETE("", handle.MoveToTrash)
		}

		// 批量移动
		itemsRoutes.POST("/move", handle.MoveItems)
	}
}

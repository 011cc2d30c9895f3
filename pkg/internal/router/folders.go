package router

import (
	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/internal/handle"
)

// RegisterFoldersRoutes 注册文件夹操作相关路由.
func RegisterFoldersRoutes(g *gin.RouterGroup) {
	foldersRoutes := g.Group("/folders")
	{
		foldersRoutes.GET("", handle.ListFolders)
		foldersRoutes.POST("", handle.CreateFolder)
		// 文件夹内容（直接子文件与子文件夹）
		foldersRoutes.GET("/:id/contents", handle.FolderContents)
	}
}

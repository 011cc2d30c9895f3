package router

import (
	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/internal/handle"
)

// RegisterFilesRoutes 注册文件操作相关路由.
func RegisterFilesRoutes(g *gin.RouterGroup) {
	filesRoutes := g.Group("/files")
	{
		// 文件列表
		filesRoutes.GET("", handle.ListFiles)
		// 创建内联文件（笔记等文本内容）
		filesRoutes.POST("", handle.CreateFile)
		// 上传文件（multipart）
		filesRoutes.POST("/upload", handle.UploadFile)

		singleGroup := filesRoutes.Group("/:id")
		{
			// 下载文件（生成预签名 URL）
			singleGroup.GET("/download", handle.DownloadFile)
			// 预览文件
			singleGroup.GET("/preview", handle.PreviewFile)
		}
	}
}

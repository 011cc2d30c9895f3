package router

import (
	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/internal/handle"
)

// RegisterProfileRoutes 注册个人资料相关路由.
func RegisterProfileRoutes(g *gin.RouterGroup) {
	profileRoutes := g.Group("/profile")
	{
		profileRoutes.GET("", handle.GetProfile)
		profileRoutes.PUT("", handle.UpdateProfile)
		// 头像与简历上传（multipart）
		profileRoutes.POST("/avatar", handle.UploadAvatar)
		profileRoutes.POST("/resume", handle.UploadResume)
	}
}

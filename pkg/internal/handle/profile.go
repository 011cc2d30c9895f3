package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/internal/service"
	"github.com/portafy/portafy/pkg/internal/types"
	"github.com/portafy/portafy/pkg/log"
	"github.com/portafy/portafy/pkg/rule"
)

// GetProfile 获取个人资料.
//
//	@Summary	个人资料
//	@Tags		资料
//	@Produce	json
//	@Success	200	{object}	types.ProfileResponse
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/profile [get]
func GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	svc := service.NewProfileService(c.Request.Context())

	resp, err := svc.Get(c.Request.Context(), user)
	if err != nil {
		log.Logger().Error().Err(err).Msg("get profile failed")
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateProfile 更新展示名与简介.
//
//	@Summary	更新个人资料
//	@Tags		资料
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.UpdateProfileRequest	true	"资料字段"
//	@Success	200		{object}	types.ProfileResponse
//	@Failure	400		{object}	map[string]string
//	@Router		/api/v1/profile [put]
func UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if err := rule.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	svc := service.NewProfileService(c.Request.Context())

	resp, err := svc.Update(c.Request.Context(), user, &req)
	if err != nil {
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// UploadAvatar 上传头像（multipart form，字段 file，仅接受图片）.
//
//	@Summary	上传头像
//	@Tags		资料
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		file	formData	file	true	"图片文件"
//	@Success	200		{object}	types.ProfileResponse
//	@Failure	400		{object}	map[string]string
//	@Router		/api/v1/profile/avatar [post]
func UploadAvatar(c *gin.Context) {
	uploadProfileAsset(c, "avatar")
}

// UploadResume 上传简历（multipart form，字段 file）.
//
//	@Summary	上传简历
//	@Tags		资料
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		file	formData	file	true	"简历文件"
//	@Success	200		{object}	types.ProfileResponse
//	@Failure	400		{object}	map[string]string
//	@Router		/api/v1/profile/resume [post]
func UploadResume(c *gin.Context) {
	uploadProfileAsset(c, "resume")
}

// uploadProfileAsset 头像与简历上传的公共流程.
func uploadProfileAsset(c *gin.Context, kind string) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})

		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}
	defer src.Close()

	svc := service.NewProfileService(c.Request.Context())

	var resp types.ProfileResponse
	if kind == "avatar" {
		resp, err = svc.UploadAvatar(c.Request.Context(), user, src, fileHeader.Size)
	} else {
		resp, err = svc.UploadResume(c.Request.Context(), user, src, fileHeader.Size)
	}

	if err != nil {
		log.Logger().Error().Err(err).Str("kind", kind).Msg("profile asset upload failed")
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/internal/service"
	"github.com/portafy/portafy/pkg/internal/types"
	"github.com/portafy/portafy/pkg/log"
	"github.com/portafy/portafy/pkg/rule"
)

// ListFiles 获取活跃文件列表.
//
//	@Summary	文件列表
//	@Tags		文件
//	@Produce	json
//	@Success	200	{object}	types.ListFilesResponse
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/files [get]
func ListFiles(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	svc := service.NewFilesService(c.Request.Context())

	resp, err := svc.List(c.Request.Context(), user)
	if err != nil {
		log.Logger().Error().Err(err).Msg("list files failed")
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateFile 创建内联文件（无数据块，仅预览内容）.
//
//	@Summary	创建文件
//	@Tags		文件
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.CreateFileRequest	true	"文件信息"
//	@Success	201		{object}	types.UploadFileResponse
//	@Failure	400		{object}	map[string]string
//	@Router		/api/v1/files [post]
func CreateFile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.CreateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if err := rule.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	svc := service.NewFilesService(c.Request.Context())

	resp, err := svc.Create(c.Request.Context(), user, &req)
	if err != nil {
		log.Logger().Error().Err(err).Msg("create file failed")
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusCreated, resp)
}

// UploadFile 上传文件（multipart form，字段 file，可选 folder_id）.
//
//	@Summary	上传文件
//	@Tags		文件
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		file		formData	file	true	"文件"
//	@Param		folder_id	formData	string	false	"所属文件夹"
//	@Success	201			{object}	types.UploadFileResponse
//	@Failure	400			{object}	map[string]string
//	@Failure	413			{object}	map[string]string
//	@Router		/api/v1/files/upload [post]
func UploadFile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})

		return
	}

	var folderID *string
	if v := c.PostForm("folder_id"); v != "" {
		folderID = &v
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}
	defer src.Close()

	svc := service.NewFilesService(c.Request.Context())

	resp, err := svc.Upload(c.Request.Context(), user, fileHeader.Filename, folderID,
		src, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		log.Logger().Error().Err(err).Str("name", fileHeader.Filename).Msg("upload failed")
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusCreated, resp)
}

// DownloadFile 生成限时下载 URL.
//
//	@Summary	下载文件
//	@Tags		文件
//	@Produce	json
//	@Param		id	path		string	true	"文件 ID"
//	@Success	200	{object}	types.DownloadFileResponse
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/files/{id}/download [get]
func DownloadFile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	svc := service.NewFilesService(c.Request.Context())

	resp, err := svc.Download(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// PreviewFile 返回文件视图（含内联预览内容）.
//
//	@Summary	预览文件
//	@Tags		文件
//	@Produce	json
//	@Param		id	path		string	true	"文件 ID"
//	@Success	200	{object}	types.FileInfo
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/files/{id}/preview [get]
func PreviewFile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	svc := service.NewFilesService(c.Request.Context())

	resp, err := svc.Preview(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/internal/service"
	"github.com/portafy/portafy/pkg/internal/types"
	"github.com/portafy/portafy/pkg/log"
	"github.com/portafy/portafy/pkg/rule"
)

// ListFolders 获取活跃文件夹列表.
//
//	@Summary	文件夹列表
//	@Tags		文件夹
//	@Produce	json
//	@Success	200	{object}	types.ListFoldersResponse
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/folders [get]
func ListFolders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	svc := service.NewFoldersService(c.Request.Context())

	resp, err := svc.List(c.Request.Context(), user)
	if err != nil {
		log.Logger().Error().Err(err).Msg("list folders failed")
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateFolder 创建文件夹.
//
//	@Summary	创建文件夹
//	@Tags		文件夹
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.CreateFolderRequest	true	"文件夹信息"
//	@Success	201		{object}	types.CreateFolderResponse
//	@Failure	400		{object}	map[string]string
//	@Router		/api/v1/folders [post]
func CreateFolder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if err := rule.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	svc := service.NewFoldersService(c.Request.Context())

	resp, err := svc.Create(c.Request.Context(), user, &req)
	if err != nil {
		log.Logger().Error().Err(err).Msg("create folder failed")
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusCreated, resp)
}

// FolderContents 获取文件夹的直接子条目.
//
//	@Summary	文件夹内容
//	@Tags		文件夹
//	@Produce	json
//	@Param		id	path		string	true	"文件夹 ID"
//	@Success	200	{object}	types.FolderContentsResponse
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/folders/{id}/contents [get]
func FolderContents(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	svc := service.NewFoldersService(c.Request.Context())

	resp, err := svc.Contents(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/internal/service"
	"github.com/portafy/portafy/pkg/internal/types"
	"github.com/portafy/portafy/pkg/rule"
)

// StarItem 设置条目星标状态.
//
//	@Summary	星标条目
//	@Tags		条目
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"条目 ID"
//	@Param		body	body		types.StarItemRequest	true	"星标状态"
//	@Success	200		{object}	types.ItemActionResponse
//	@Failure	404		{object}	map[string]string
//	@Router		/api/v1/items/{id}/star [post]
func StarItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.StarItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	id := c.Param("id")
	svc := service.NewItemsService(c.Request.Context())

	if err := svc.Star(c.Request.Context(), user, id, req.Starred); err != nil {
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, types.ItemActionResponse{ID: id})
}

// RenameItem 重命名条目.
//
//	@Summary	重命名条目
//	@Tags		条目
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"条目 ID"
//	@Param		body	body		types.RenameItemRequest	true	"新名称"
//	@Success	200		{object}	types.ItemActionResponse
//	@Failure	400		{object}	map[string]string
//	@Failure	404		{object}	map[string]string
//	@Router		/api/v1/items/{id}/rename [post]
func RenameItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.RenameItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if err := rule.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	id := c.Param("id")
	svc := service.NewItemsService(c.Request.Context())

	if err := svc.Rename(c.Request.Context(), user, id, req.Name); err != nil {
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, types.ItemActionResponse{ID: id})
}

// MoveItem 移动条目到目标文件夹.
//
//	@Summary	移动条目
//	@Tags		条目
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"条目 ID"
//	@Param		body	body		types.MoveItemRequest	true	"目标文件夹，空表示根级"
//	@Success	200		{object}	types.ItemActionResponse
//	@Failure	404		{object}	map[string]string
//	@Router		/api/v1/items/{id}/move [post]
func MoveItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.MoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	id := c.Param("id")
	svc := service.NewItemsService(c.Request.Context())

	if err := svc.Move(c.Request.Context(), user, id, req.TargetFolderID); err != nil {
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, types.ItemActionResponse{ID: id})
}

// MoveItems 批量移动条目，逐条处理并汇总失败原因.
//
//	@Summary	批量移动条目
//	@Tags		条目
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.MoveItemsRequest	true	"条目列表与目标文件夹"
//	@Success	200		{object}	types.MoveItemsResponse
//	@Failure	400		{object}	map[string]string
//	@Router		/api/v1/items/move [post]
func MoveItems(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.MoveItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	svc := service.NewItemsService(c.Request.Context())
	resp := svc.MoveBatch(c.Request.Context(), user, &req)

	c.JSON(http.StatusOK, resp)
}

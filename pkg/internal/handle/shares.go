package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/internal/service"
	"github.com/portafy/portafy/pkg/internal/types"
	"github.com/portafy/portafy/pkg/rule"
)

// CreateShare 为活跃条目创建分享链接.
//
//	@Summary	创建分享
//	@Tags		分享
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.CreateShareRequest	true	"分享参数"
//	@Success	201		{object}	types.ShareInfo
//	@Failure	400		{object}	map[string]string
//	@Failure	404		{object}	map[string]string
//	@Router		/api/v1/shares [post]
func CreateShare(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.CreateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if err := rule.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	svc := service.NewSharesService(c.Request.Context())

	resp, err := svc.Create(c.Request.Context(), user, &req)
	if err != nil {
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListShares 列出用户的全部分享.
//
//	@Summary	分享列表
//	@Tags		分享
//	@Produce	json
//	@Success	200	{object}	types.ListSharesResponse
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/shares [get]
func ListShares(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	svc := service.NewSharesService(c.Request.Context())

	resp, err := svc.List(c.Request.Context(), user)
	if err != nil {
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// RevokeShare 撤销分享.
//
//	@Summary	撤销分享
//	@Tags		分享
//	@Produce	json
//	@Param		id	path		string	true	"分享 ID"
//	@Success	200	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/shares/{id} [delete]
func RevokeShare(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	svc := service.NewSharesService(c.Request.Context())

	if err := svc.Revoke(c.Request.Context(), user, c.Param("id")); err != nil {
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "share revoked"})
}

// ResolveShare 公开访问分享，无需登录.
//
//	@Summary	访问分享
//	@Tags		分享
//	@Produce	json
//	@Param		id	path		string	true	"分享 ID"
//	@Success	200	{object}	types.ResolveShareResponse
//	@Failure	404	{object}	map[string]string
//	@Failure	410	{object}	map[string]string
//	@Router		/s/{id} [get]
func ResolveShare(c *gin.Context) {
	svc := service.NewSharesService(c.Request.Context())

	resp, err := svc.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

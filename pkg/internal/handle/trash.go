package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/internal/service"
	"github.com/portafy/portafy/pkg/log"
)

// ListTrash 获取回收站列表，最近删除的排最前.
//
//	@Summary	回收站列表
//	@Tags		回收站
//	@Produce	json
//	@Success	200	{object}	types.TrashListResponse
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/trash [get]
func ListTrash(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	svc := service.NewTrashService(c.Request.Context())

	resp, err := svc.List(c.Request.Context(), user)
	if err != nil {
		log.Logger().Error().Err(err).Msg("trash list failed")
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// MoveToTrash 把条目移入回收站.文件夹会携带全部后代逐条入回收站.
//
//	@Summary	移入回收站
//	@Tags		回收站
//	@Produce	json
//	@Param		id	path		string	true	"条目 ID"
//	@Success	200	{object}	types.TrashActionResponse
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/items/{id} [delete]
func MoveToTrash(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	svc := service.NewTrashService(c.Request.Context())

	resp, err := svc.MoveToTrash(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// RestoreTrash 还原回收站条目.id 不在回收站时无操作.
//
//	@Summary	还原回收站条目
//	@Tags		回收站
//	@Produce	json
//	@Param		id	path		string	true	"条目 ID"
//	@Success	200	{object}	types.TrashActionResponse
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/trash/{id}/restore [post]
func RestoreTrash(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	svc := service.NewTrashService(c.Request.Context())

	resp, err := svc.Restore(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteTrash 彻底删除回收站条目（硬删行并释放数据块），幂等.
//
//	@Summary	彻底删除回收站条目
//	@Tags		回收站
//	@Produce	json
//	@Param		id	path		string	true	"条目 ID"
//	@Success	200	{object}	types.TrashActionResponse
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/trash/{id} [delete]
func DeleteTrash(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	svc := service.NewTrashService(c.Request.Context())

	resp, err := svc.DeletePermanently(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// EmptyTrash 清空回收站.
//
//	@Summary	清空回收站
//	@Tags		回收站
//	@Produce	json
//	@Success	200	{object}	types.TrashActionResponse
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/trash [delete]
func EmptyTrash(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	svc := service.NewTrashService(c.Request.Context())

	resp, err := svc.Empty(c.Request.Context(), user)
	if err != nil {
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

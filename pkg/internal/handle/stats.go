package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/internal/service"
)

// GetStats 获取用量统计.
//
//	@Summary	用量统计
//	@Tags		统计
//	@Produce	json
//	@Success	200	{object}	types.StatsResponse
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/stats [get]
func GetStats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	svc := service.NewStatsService(c.Request.Context())

	resp, err := svc.Overview(c.Request.Context(), user)
	if err != nil {
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

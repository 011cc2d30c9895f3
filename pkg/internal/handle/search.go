package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/internal/service"
	"github.com/portafy/portafy/pkg/internal/types"
	"github.com/portafy/portafy/pkg/rule"
)

// Search 搜索活跃条目.
//
//	@Summary	搜索
//	@Tags		搜索
//	@Produce	json
//	@Param		q			query		string	false	"名称子串，忽略大小写"
//	@Param		type		query		string	false	"文件大类：all/image/document/video/audio"
//	@Param		start		query		string	false	"创建时间下界（RFC3339，含）"
//	@Param		end			query		string	false	"创建时间上界（RFC3339，含）"
//	@Param		folder_id	query		string	false	"所属文件夹；root 表示仅根级"
//	@Param		starred		query		bool	false	"仅星标条目"
//	@Success	200			{object}	types.SearchResponse
//	@Failure	400			{object}	map[string]string
//	@Router		/api/v1/search [get]
func Search(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if err := rule.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	svc := service.NewSearchService(c.Request.Context())

	resp, err := svc.Search(c.Request.Context(), user, &req)
	if err != nil {
		respondErr(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

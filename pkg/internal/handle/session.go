package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/configs"
	ctxPkg "github.com/portafy/portafy/pkg/context"
)

// SessionInfo 返回当前会话概况.
//
//	@Summary	会话信息
//	@Tags		会话
//	@Produce	json
//	@Success	200	{object}	map[string]any
//	@Router		/api/v1/session [get]
func SessionInfo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	mgr := ctxPkg.GetSessionManager(c.Request.Context())

	sess, loaded := mgr.Peek(user)
	if !loaded {
		c.JSON(http.StatusOK, gin.H{"user": user, "loaded": false})

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"loaded":      true,
		"started_at":  sess.StartedAt(),
		"last_active": sess.LastActive(),
		"files":       len(sess.Files()),
		"folders":     len(sess.Folders()),
		"trash":       len(sess.Trash()),
	})
}

// SignOut 结束当前会话并给出认证代理的登出地址.
//
//	@Summary	登出
//	@Tags		会话
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/api/v1/session/signout [post]
func SignOut(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctxPkg.GetSessionManager(c.Request.Context()).End(user)

	c.JSON(http.StatusOK, gin.H{
		"message":      "signed out",
		"sign_out_url": configs.GetConfig().Auth.SignOutURL,
	})
}

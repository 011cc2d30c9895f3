// Package handle 提供请求处理器的实现，桥接 HTTP 请求与业务服务.
package handle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/portafy/portafy/pkg/context"
	"github.com/portafy/portafy/pkg/internal/service"
	"github.com/portafy/portafy/pkg/rule"
)

// currentUser 取认证中间件注入的用户标识并校验格式.
func currentUser(c *gin.Context) (string, bool) {
	user := ctxPkg.GetUser(c.Request.Context())
	if user == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})

		return "", false
	}

	if err := rule.ValidateVar(user, "required,email"); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user identity"})

		return "", false
	}

	return user, true
}

// respondErr 把服务层错误映射为 HTTP 状态码.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoBlob):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrShareExpired):
		c.JSON(http.StatusGone, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/portafy/portafy/pkg/configs"
	ctxPkg "github.com/portafy/portafy/pkg/context"
)

// AuthMiddleware 基于认证代理（如 oauth2-proxy）注入的请求头识别用户，
// 并把用户标识写入请求 context 供服务层取用。
//   - 按 UserHeader、FallbackHeaders 顺序取第一个非空请求头
//   - 均为空时回退到 DevUser（仅开发配置），仍为空则拒绝.
func AuthMiddleware(conf configs.AuthConfig) gin.HandlerFunc {
	headers := append([]string{conf.UserHeader}, conf.FallbackHeaders...)

	return func(c *gin.Context) {
		var user string

		for _, h := range headers {
			if h == "" {
				continue
			}

			if v := strings.TrimSpace(c.GetHeader(h)); v != "" {
				user = v

				break
			}
		}

		if user == "" {
			user = conf.DevUser
		}

		if user == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "unauthorized",
				"login_url": conf.ProfileURL,
			})

			return
		}

		ctx := ctxPkg.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

package configs

import (
	"github.com/spf13/viper"
)

// AuthConfig 认证配置.
//
// 应用部署在认证代理（如 oauth2-proxy）之后，
// 用户身份由代理注入的请求头给出.
type AuthConfig struct {
	// UserHeader 携带用户标识（邮箱）的请求头
	UserHeader string `mapstructure:"user_header"`
	// FallbackHeaders 备选请求头，按顺序尝试
	FallbackHeaders []string `mapstructure:"fallback_headers"`
	// DevUser 开发模式下未带请求头时使用的用户标识，空表示拒绝
	DevUser string `mapstructure:"dev_user"`
	// ProfileURL 认证代理的账号管理页地址，凭据变更跳转到此处
	ProfileURL string `mapstructure:"profile_url"`
	// SignOutURL 认证代理的登出地址
	SignOutURL string `mapstructure:"sign_out_url"`
}

// setDefaults 设置认证配置的默认值.
func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.user_header", "X-Auth-Request-Email")
	v.SetDefault("auth.fallback_headers", []string{"X-Forwarded-Email", "X-Forwarded-User"})
	v.SetDefault("auth.dev_user", "")
	v.SetDefault("auth.profile_url", "/oauth2/sign_in")
	v.SetDefault("auth.sign_out_url", "/oauth2/sign_out")
}

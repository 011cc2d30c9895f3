package configs

import (
	"github.com/spf13/viper"
)

// RateLimitConfig 限流配置.
type RateLimitConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// RPS 每秒允许的请求数
	RPS float64 `mapstructure:"rps"`
	// Burst 突发容量
	Burst int `mapstructure:"burst"`
	// PerUser 是否按用户单独限流
	PerUser bool `mapstructure:"per_user"`
}

// setDefaults 设置限流配置的默认值.
func (c *RateLimitConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.rps", 50.0)
	v.SetDefault("rate_limit.burst", 100)
	v.SetDefault("rate_limit.per_user", true)
}

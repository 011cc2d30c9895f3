package configs

import (
	"time"

	"github.com/spf13/viper"
)

// CircuitBreakerConfig 熔断器配置，保护对象存储等下游依赖.
type CircuitBreakerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// MaxRequests 半开状态下允许通过的请求数
	MaxRequests uint32 `mapstructure:"max_requests"`
	// IntervalSeconds 闭合状态下统计窗口（秒）
	IntervalSeconds int `mapstructure:"interval_seconds"`
	// TimeoutSeconds 打开状态持续多久后进入半开（秒）
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// FailureThreshold 触发熔断的连续失败次数
	FailureThreshold uint32 `mapstructure:"failure_threshold"`
}

// GetInterval 获取统计窗口时长.
func (c *CircuitBreakerConfig) GetInterval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// GetTimeout 获取熔断打开时长.
func (c *CircuitBreakerConfig) GetTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// setDefaults 设置熔断器配置的默认值.
func (c *CircuitBreakerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("circuit_breaker.enabled", false)
	v.SetDefault("circuit_breaker.max_requests", 3)
	v.SetDefault("circuit_breaker.interval_seconds", 60)
	v.SetDefault("circuit_breaker.timeout_seconds", 30)
	v.SetDefault("circuit_breaker.failure_threshold", 5)
}

package configs

import (
	"github.com/spf13/viper"
)

// MetricsConfig Prometheus指标配置.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
	// Namespace 指标命名空间前缀
	Namespace string `mapstructure:"namespace"`
	// DBStats 是否采集数据库连接池指标
	DBStats bool `mapstructure:"db_stats"`
	// RuntimeMetrics 是否采集 Go 运行时指标
	RuntimeMetrics bool `mapstructure:"runtime_metrics"`
	// Pprof 是否开放 pprof 端点
	Pprof bool `mapstructure:"pprof"`
}

// setDefaults 设置指标配置的默认值.
func (c *MetricsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.namespace", "portafy")
	v.SetDefault("metrics.db_stats", true)
	v.SetDefault("metrics.runtime_metrics", true)
	v.SetDefault("metrics.pprof", false)
}

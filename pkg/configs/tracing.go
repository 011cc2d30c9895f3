package configs

import (
	"github.com/spf13/viper"
)

// TracingConfig OpenTelemetry链路追踪配置.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// ServiceName 上报的服务名
	ServiceName string `mapstructure:"service_name"`
	// ServiceVersion 上报的服务版本
	ServiceVersion string `mapstructure:"service_version"`
	// ExporterType 导出器类型: otlp-grpc, otlp-http, zipkin
	ExporterType string `mapstructure:"exporter_type" rule:"omitempty,oneof=otlp-grpc otlp-http zipkin"`
	// Endpoint 导出器端点
	Endpoint string `mapstructure:"endpoint"`
	// SampleRate 采样比例，1.0 表示全量
	SampleRate float64 `mapstructure:"sample_rate"`
}

// setDefaults 设置追踪配置的默认值.
func (c *TracingConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "portafy")
	v.SetDefault("tracing.service_version", AppVersion)
	v.SetDefault("tracing.exporter_type", "otlp-grpc")
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.sample_rate", 1.0)
}

package configs

import (
	"github.com/spf13/viper"
)

// LogConfig 日志配置.
type LogConfig struct {
	// Level 日志级别: trace, debug, info, warn, error, fatal, panic
	Level string `mapstructure:"level" rule:"omitempty,oneof=trace debug info warn error fatal panic"`
	// Format 输出格式: json, console
	Format string `mapstructure:"format" rule:"omitempty,oneof=json console"`
	// Output 输出目标: stdout, file, both
	Output string `mapstructure:"output" rule:"omitempty,oneof=stdout file both"`

	File LogFileConfig `mapstructure:"file"`
}

// LogFileConfig 日志文件滚动配置.
type LogFileConfig struct {
	Path string `mapstructure:"path"`
	// MaxSize 单个日志文件最大尺寸（MB）
	MaxSize int `mapstructure:"max_size"`
	// MaxBackups 保留的旧日志文件数量
	MaxBackups int `mapstructure:"max_backups"`
	// MaxAge 日志文件保留天数
	MaxAge int `mapstructure:"max_age"`
	// Compress 是否压缩旧日志
	Compress bool `mapstructure:"compress"`
}

// setDefaults 设置日志配置的默认值.
func (c *LogConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("log.file.path", "logs/portafy.log")
	v.SetDefault("log.file.max_size", 100)
	v.SetDefault("log.file.max_backups", 3)
	v.SetDefault("log.file.max_age", 28)
	v.SetDefault("log.file.compress", true)
}

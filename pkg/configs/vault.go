package configs

import (
	"time"

	"github.com/spf13/viper"
)

// VaultConfig 用户数据会话与回收站配置.
type VaultConfig struct {
	// TrashSlot 回收站在 KV 中的槽位名
	TrashSlot string `mapstructure:"trash_slot"`
	// StripContent 回收站落盘时是否剥离文件内容字段
	StripContent bool `mapstructure:"strip_content"`
	// SessionIdleMinutes 会话空闲多少分钟后被回收
	SessionIdleMinutes int `mapstructure:"session_idle_minutes"`
	// SessionSweepMinutes 空闲会话清扫任务的执行间隔（分钟）
	SessionSweepMinutes int `mapstructure:"session_sweep_minutes"`
	// MaxUploadSizeMB 单个文件上传大小上限（MB）
	MaxUploadSizeMB int `mapstructure:"max_upload_size_mb"`
}

// GetSessionIdle 获取会话空闲回收时长.
func (c *VaultConfig) GetSessionIdle() time.Duration {
	return time.Duration(c.SessionIdleMinutes) * time.Minute
}

// GetSessionSweepInterval 获取会话清扫间隔.
func (c *VaultConfig) GetSessionSweepInterval() time.Duration {
	return time.Duration(c.SessionSweepMinutes) * time.Minute
}

// MaxUploadBytes 获取上传大小上限（字节）.
func (c *VaultConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadSizeMB) << 20
}

// setDefaults 设置会话与回收站配置的默认值.
func (c *VaultConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("vault.trash_slot", "appTrash")
	v.SetDefault("vault.strip_content", true)
	v.SetDefault("vault.session_idle_minutes", 30)
	v.SetDefault("vault.session_sweep_minutes", 10)
	v.SetDefault("vault.max_upload_size_mb", 50)
}

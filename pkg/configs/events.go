package configs

import (
	"github.com/spf13/viper"
)

// EventsConfig 领域事件发布开关.
type EventsConfig struct {
	// Enabled 是否发布领域事件，关闭时所有发布为空操作
	Enabled bool `mapstructure:"enabled"`
	// TrashEvents 回收站事件（移入/还原/彻底删除）
	TrashEvents bool `mapstructure:"trash_events"`
	// ItemEvents 条目事件（创建/重命名/移动/星标）
	ItemEvents bool `mapstructure:"item_events"`
	// ProfileEvents 个人资料事件
	ProfileEvents bool `mapstructure:"profile_events"`
	// SessionEvents 会话生命周期事件
	SessionEvents bool `mapstructure:"session_events"`
}

// setDefaults 设置事件配置的默认值.
func (c *EventsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("events.enabled", true)
	v.SetDefault("events.trash_events", true)
	v.SetDefault("events.item_events", true)
	v.SetDefault("events.profile_events", true)
	v.SetDefault("events.session_events", true)
}

package configs

import (
	"github.com/spf13/viper"
)

// MQType 消息队列类型.
type MQType string

const (
	MQTypeNATS  MQType = "nats"
	MQTypeRedis MQType = "redis"
	MQTypeNone  MQType = "none"
)

// MQConfig 消息队列配置.
type MQConfig struct {
	// Type 消息队列类型: nats, redis, none
	Type MQType `mapstructure:"type" rule:"required,oneof=nats redis none"`

	NATS  MQNATSConfig  `mapstructure:"nats"`
	Redis MQRedisConfig `mapstructure:"redis"`
}

// MQNATSConfig NATS JetStream消息队列配置.
type MQNATSConfig struct {
	URL string `mapstructure:"url"`
	// StreamName JetStream 流名称
	StreamName string `mapstructure:"stream_name"`
	// SubjectPrefix 所有主题的前缀
	SubjectPrefix string `mapstructure:"subject_prefix"`
	// ClusterID 集群标识
	ClusterID string `mapstructure:"cluster_id"`
	// ClientID 客户端标识
	ClientID string `mapstructure:"client_id"`
	// DurableName 持久化消费者名称
	DurableName string `mapstructure:"durable_name"`
}

// MQRedisConfig Redis Streams消息队列配置.
type MQRedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// ConsumerGroup 消费者组名称
	ConsumerGroup string `mapstructure:"consumer_group"`
}

// Enabled 消息队列是否启用.
func (c *MQConfig) Enabled() bool {
	return c.Type != "" && c.Type != "none"
}

// setDefaults 设置消息队列配置的默认值.
func (c *MQConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("mq.type", "none")

	v.SetDefault("mq.nats.url", "nats://localhost:4222")
	v.SetDefault("mq.nats.stream_name", "portafy-stream")
	v.SetDefault("mq.nats.subject_prefix", "pf.")
	v.SetDefault("mq.nats.cluster_id", "portafy-cluster")
	v.SetDefault("mq.nats.client_id", "portafy-app")
	v.SetDefault("mq.nats.durable_name", "portafy-durable")

	v.SetDefault("mq.redis.addr", "localhost:6379")
	v.SetDefault("mq.redis.password", "")
	v.SetDefault("mq.redis.db", 1)
	v.SetDefault("mq.redis.consumer_group", "portafy")
}

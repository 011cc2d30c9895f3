package configs

import (
	"time"

	"github.com/spf13/viper"
)

// KVConfig KV存储配置.
type KVConfig struct {
	// Type KV存储类型: memory, redis, nats, groupcache
	Type string `mapstructure:"type" rule:"required,oneof=memory redis nats groupcache"`
	// DefaultTTL 默认过期时间（秒），0 表示不过期
	DefaultTTL int `mapstructure:"default_ttl"`

	Redis      KVRedisConfig      `mapstructure:"redis"`
	NATS       KVNATSConfig       `mapstructure:"nats"`
	Groupcache KVGroupcacheConfig `mapstructure:"groupcache"`
}

// KVRedisConfig Redis KV后端配置.
type KVRedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// KeyPrefix 所有键的前缀，用于多应用共享实例时隔离
	KeyPrefix string `mapstructure:"key_prefix"`
}

// KVNATSConfig NATS JetStream KV后端配置.
type KVNATSConfig struct {
	URL    string `mapstructure:"url"`
	Bucket string `mapstructure:"bucket"`
	// Replicas JetStream 副本数
	Replicas int `mapstructure:"replicas"`
}

// KVGroupcacheConfig groupcache后端配置.
type KVGroupcacheConfig struct {
	// Self 本节点地址
	Self string `mapstructure:"self"`
	// Peers 集群节点地址列表
	Peers []string `mapstructure:"peers"`
	// CacheBytes 缓存容量（字节）
	CacheBytes int64 `mapstructure:"cache_bytes"`
}

// GetDefaultTTL 获取默认TTL时长.
func (c *KVConfig) GetDefaultTTL() time.Duration {
	return time.Duration(c.DefaultTTL) * time.Second
}

// setDefaults 设置 KV 配置的默认值.
func (c *KVConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("kv.type", "memory")
	v.SetDefault("kv.default_ttl", 0)

	v.SetDefault("kv.redis.addr", "localhost:6379")
	v.SetDefault("kv.redis.password", "")
	v.SetDefault("kv.redis.db", 0)
	v.SetDefault("kv.redis.key_prefix", "portafy:")

	v.SetDefault("kv.nats.url", "nats://localhost:4222")
	v.SetDefault("kv.nats.bucket", "portafy-kv")
	v.SetDefault("kv.nats.replicas", 1)

	v.SetDefault("kv.groupcache.self", "http://localhost:8081")
	v.SetDefault("kv.groupcache.peers", []string{})
	v.SetDefault("kv.groupcache.cache_bytes", 64<<20)
}

// Package context 拓展上下文功能，将日志、服务等集成到上下文中，方便在应用程序各处传递和使用.
package context

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/portafy/portafy/pkg/internal/storage"
	dbc "github.com/portafy/portafy/pkg/internal/storage/db"
	kvc "github.com/portafy/portafy/pkg/internal/storage/kv"
	mqc "github.com/portafy/portafy/pkg/internal/storage/mq"
	s3c "github.com/portafy/portafy/pkg/internal/storage/s3"
	"github.com/portafy/portafy/pkg/internal/vault"
)

type ContextKey string

const (
	StorageManagerKey ContextKey = "storageManager"
	SessionManagerKey ContextKey = "sessionManager"
	CurrentUserKey    ContextKey = "currentUser"
)

// WithStorageManager 将 Manager 存储到 context 中.
func WithStorageManager(ctx context.Context, mgr *storage.Manager) context.Context {
	return context.WithValue(ctx, StorageManagerKey, mgr)
}

// GetManager 从 context 中获取 Manager.
func GetManager(ctx context.Context) *storage.Manager {
	if mgr, ok := ctx.Value(StorageManagerKey).(*storage.Manager); ok {
		return mgr
	}

	return nil
}

// WithSessionManager 将会话管理器存储到 context 中.
func WithSessionManager(ctx context.Context, mgr *vault.Manager) context.Context {
	return context.WithValue(ctx, SessionManagerKey, mgr)
}

// GetSessionManager 从 context 中获取会话管理器.
func GetSessionManager(ctx context.Context) *vault.Manager {
	if mgr, ok := ctx.Value(SessionManagerKey).(*vault.Manager); ok {
		return mgr
	}

	return nil
}

// WithUser 将当前用户标识存储到 context 中.
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, CurrentUserKey, user)
}

// GetUser 从 context 中获取当前用户标识，未认证时返回空字符串.
func GetUser(ctx context.Context) string {
	if user, ok := ctx.Value(CurrentUserKey).(string); ok {
		return user
	}

	return ""
}

// GetS3Client 从 context 中获取 S3 客户端.
func GetS3Client(ctx context.Context) *s3c.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetS3Client()
	}

	return nil
}

// GetDBClient 从 context 中获取 DB 客户端.
func GetDBClient(ctx context.Context) *dbc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetDBClient()
	}

	return nil
}

// GetMQClient 从 context 中获取 MQ 客户端.
func GetMQClient(ctx context.Context) *mqc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetMQClient()
	}

	return nil
}

// GetKVClient 从 context 中获取 KV 客户端.
func GetKVClient(ctx context.Context) *kvc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetKVClient()
	}

	return nil
}

// WithTraceContext 创建带有追踪上下文的logger.
func WithTraceContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		return logger.With().
			Str("trace_id", span.SpanContext().TraceID().String()).
			Str("span_id", span.SpanContext().SpanID().String()).
			Logger()
	}

	return logger
}

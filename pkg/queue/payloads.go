package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 建议在发布消息时填充 TraceID、OccurredAt、Producer 等，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// -------------------------- 条目领域 --------------------------

// ItemRef 标识一个文件或文件夹条目.
type ItemRef struct {
	ID       string `json:"id"`
	ItemType string `json:"item_type"` // file 或 folder
	Name     string `json:"name"`
	User     string `json:"user"`
	// FolderID 所属文件夹，根目录为空.
	FolderID string `json:"folder_id,omitempty"`
}

// -------------------------- 回收站领域 --------------------------

// TrashMovedPayload 条目移入回收站.
type TrashMovedPayload struct {
	Item ItemRef `json:"item"`
	// Cascade 是否由上级文件夹级联删除触发.
	Cascade   bool      `json:"cascade,omitempty"`
	DeletedAt time.Time `json:"deleted_at"`
}

// TrashRestoredPayload 条目从回收站还原.
type TrashRestoredPayload struct {
	Item ItemRef `json:"item"`
	// LocalOnly 仅还原到本地集合（远端数据未被删除时）.
	LocalOnly bool `json:"local_only,omitempty"`
}

// TrashPurgedPayload 条目被彻底删除.
type TrashPurgedPayload struct {
	Item ItemRef `json:"item"`
	// BlobRemoved 对象存储中的数据块是否一并删除.
	BlobRemoved bool `json:"blob_removed,omitempty"`
}

// -------------------------- 文件与文件夹领域 --------------------------

// FileCreatedPayload 文件创建完成.
type FileCreatedPayload struct {
	Item        ItemRef `json:"item"`
	Size        int64   `json:"size,omitempty"`
	ContentType string  `json:"content_type,omitempty"`
	StoragePath string  `json:"storage_path,omitempty"`
}

// FileAccessedPayload 文件被访问.
type FileAccessedPayload struct {
	Item   ItemRef `json:"item"`
	Action string  `json:"action,omitempty"` // download 或 preview
}

// FolderCreatedPayload 文件夹创建完成.
type FolderCreatedPayload struct {
	Item ItemRef `json:"item"`
}

// ItemStarredPayload 条目星标状态变更.
type ItemStarredPayload struct {
	Item    ItemRef `json:"item"`
	Starred bool    `json:"starred"`
}

// ItemRenamedPayload 条目重命名.
type ItemRenamedPayload struct {
	Item    ItemRef `json:"item"`
	OldName string  `json:"old_name"`
}

// ItemMovedPayload 条目移动.
type ItemMovedPayload struct {
	Item         ItemRef `json:"item"`
	FromFolderID string  `json:"from_folder_id,omitempty"`
	ToFolderID   string  `json:"to_folder_id,omitempty"`
}

// -------------------------- 个人资料领域 --------------------------

// ProfileUpdatedPayload 个人资料更新.
type ProfileUpdatedPayload struct {
	User string `json:"user"`
	// Fields 被更新的字段名列表，如 name、avatar、resume.
	Fields []string `json:"fields,omitempty"`
}

// -------------------------- 会话领域 --------------------------

// SessionStartedPayload 用户会话建立.
type SessionStartedPayload struct {
	User      string    `json:"user"`
	StartedAt time.Time `json:"started_at"`
	// TrashEntries 会话加载时回收站中已有的条目数.
	TrashEntries int `json:"trash_entries,omitempty"`
}

// SessionEndedPayload 用户会话结束.
type SessionEndedPayload struct {
	User    string    `json:"user"`
	EndedAt time.Time `json:"ended_at"`
	// Reason 结束原因：signout 或 idle.
	Reason string `json:"reason,omitempty"`
}

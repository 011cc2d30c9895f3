// Package store 定义持久层能力边界：数据库行与对象存储数据块的增删改查.
// 会话层只依赖该接口，不直接接触 GORM 或 MinIO.
package store

import (
	"context"
	"io"
	"time"

	"github.com/portafy/portafy/pkg/internal/model"
)

// Store 持久层接口，按用户隔离.
type Store interface {
	// ListFiles 列出用户全部文件，按 created_at 降序.
	ListFiles(ctx context.Context, user string) ([]model.File, error)
	// ListFolders 列出用户全部文件夹，按 created_at 降序.
	ListFolders(ctx context.Context, user string) ([]model.Folder, error)

	// InsertFile 写入文件行，ID/CreatedAt 由调用方或本方法分配.
	InsertFile(ctx context.Context, file *model.File) error
	// InsertFolder 写入文件夹行.
	InsertFolder(ctx context.Context, folder *model.Folder) error

	// UpdateFile 按 ID 更新文件行.
	UpdateFile(ctx context.Context, file *model.File) error
	// UpdateFolder 按 ID 更新文件夹行.
	UpdateFolder(ctx context.Context, folder *model.Folder) error

	// DeleteFile 软删除文件行（移入回收站时调用）；行不存在不视为错误.
	DeleteFile(ctx context.Context, user, id string) error
	// DeleteFolder 软删除文件夹行.
	DeleteFolder(ctx context.Context, user, id string) error

	// PurgeFile 硬删除文件行（彻底删除时调用），幂等.
	PurgeFile(ctx context.Context, user, id string) error
	// PurgeFolder 硬删除文件夹行，幂等.
	PurgeFolder(ctx context.Context, user, id string) error

	// GetProfile 读取用户资料，不存在时返回零值资料而非错误.
	GetProfile(ctx context.Context, user string) (model.Profile, error)
	// SaveProfile 写入用户资料（不存在则创建）.
	SaveProfile(ctx context.Context, profile *model.Profile) error

	// CreateShare 写入分享记录.
	CreateShare(ctx context.Context, share *model.Share) error
	// GetShare 按分享标识读取记录.
	GetShare(ctx context.Context, shareID string) (model.Share, error)
	// ListShares 列出用户的全部分享.
	ListShares(ctx context.Context, owner string) ([]model.Share, error)
	// DeleteShare 删除分享记录.
	DeleteShare(ctx context.Context, owner, shareID string) error
	// DeleteSharesForItem 删除指向某条目的所有分享.
	DeleteSharesForItem(ctx context.Context, owner, itemID string) error

	// FilesInFolder 列出文件夹的直接子文件.
	FilesInFolder(ctx context.Context, user, folderID string) ([]model.File, error)
	// Subfolders 列出文件夹的直接子文件夹.
	Subfolders(ctx context.Context, user, folderID string) ([]model.Folder, error)

	// UploadBlob 上传数据块.
	UploadBlob(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// DownloadBlob 下载数据块，调用方负责 Close.
	DownloadBlob(ctx context.Context, key string) (io.ReadCloser, error)
	// RemoveBlob 删除数据块；键不存在不视为错误.
	RemoveBlob(ctx context.Context, key string) error
	// PublicURL 生成限时访问 URL.
	PublicURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	minio "github.com/minio/minio-go/v7"
	"gorm.io/gorm"

	dbc "github.com/portafy/portafy/pkg/internal/storage/db"
	s3c "github.com/portafy/portafy/pkg/internal/storage/s3"
	"github.com/portafy/portafy/pkg/internal/model"
)

// Remote 基于 GORM + MinIO 的 Store 实现.
type Remote struct {
	db     *dbc.Client
	s3     *s3c.Client
	bucket string
}

// NewRemote 创建 Remote 存储实例.
func NewRemote(db *dbc.Client, s3 *s3c.Client, bucket string) *Remote {
	return &Remote{db: db, s3: s3, bucket: bucket}
}

// AutoMigrate 迁移全部表结构.
func (r *Remote) AutoMigrate() error {
	return r.db.GetDB().AutoMigrate(
		&model.File{},
		&model.Folder{},
		&model.Profile{},
		&model.Share{},
	)
}

// ListFiles 列出用户全部文件，按 created_at 降序.
func (r *Remote) ListFiles(ctx context.Context, user string) ([]model.File, error) {
	var files []model.File

	dbx := r.db.GetDB().WithContext(ctx)
	if err := dbx.Where("user = ?", user).Order("created_at DESC").Find(&files).Error; err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	return files, nil
}

// ListFolders 列出用户全部文件夹，按 created_at 降序.
func (r *Remote) ListFolders(ctx context.Context, user string) ([]model.Folder, error) {
	var folders []model.Folder

	dbx := r.db.GetDB().WithContext(ctx)
	if err := dbx.Where("user = ?", user).Order("created_at DESC").Find(&folders).Error; err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	return folders, nil
}

// InsertFile 写入文件行；ID 为空时分配 UUID.
func (r *Remote) InsertFile(ctx context.Context, file *model.File) error {
	if file.ID == "" {
		file.ID = uuid.NewString()
	}

	dbx := r.db.GetDB().WithContext(ctx)
	if err := dbx.Create(file).Error; err != nil {
		return fmt.Errorf("insert file: %w", err)
	}

	return nil
}

// InsertFolder 写入文件夹行；ID 为空时分配 UUID.
func (r *Remote) InsertFolder(ctx context.Context, folder *model.Folder) error {
	if folder.ID == "" {
		folder.ID = uuid.NewString()
	}

	dbx := r.db.GetDB().WithContext(ctx)
	if err := dbx.Create(folder).Error; err != nil {
		return fmt.Errorf("insert folder: %w", err)
	}

	return nil
}

// UpdateFile 按 ID 更新文件行.
func (r *Remote) UpdateFile(ctx context.Context, file *model.File) error {
	dbx := r.db.GetDB().WithContext(ctx)

	tx := dbx.Model(&model.File{}).Where("id = ? AND user = ?", file.ID, file.User).
		Select("name", "type", "size", "starred", "is_uploaded", "storage_path", "content", "folder_id").
		Updates(file)
	if tx.Error != nil {
		return fmt.Errorf("update file: %w", tx.Error)
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// UpdateFolder 按 ID 更新文件夹行.
func (r *Remote) UpdateFolder(ctx context.Context, folder *model.Folder) error {
	dbx := r.db.GetDB().WithContext(ctx)

	tx := dbx.Model(&model.Folder{}).Where("id = ? AND user = ?", folder.ID, folder.User).
		Select("name", "starred", "parent_folder_id").
		Updates(folder)
	if tx.Error != nil {
		return fmt.Errorf("update folder: %w", tx.Error)
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DeleteFile 删除文件行；行不存在不视为错误.
func (r *Remote) DeleteFile(ctx context.Context, user, id string) error {
	dbx := r.db.GetDB().WithContext(ctx)
	if err := dbx.Where("id = ? AND user = ?", id, user).Delete(&model.File{}).Error; err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	return nil
}

// DeleteFolder 删除文件夹行.
func (r *Remote) DeleteFolder(ctx context.Context, user, id string) error {
	dbx := r.db.GetDB().WithContext(ctx)
	if err := dbx.Where("id = ? AND user = ?", id, user).Delete(&model.Folder{}).Error; err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	return nil
}

// PurgeFile 硬删除文件行，幂等.
func (r *Remote) PurgeFile(ctx context.Context, user, id string) error {
	dbx := r.db.GetDB().WithContext(ctx)
	if err := dbx.Unscoped().Where("id = ? AND user = ?", id, user).Delete(&model.File{}).Error; err != nil {
		return fmt.Errorf("purge file: %w", err)
	}

	return nil
}

// PurgeFolder 硬删除文件夹行，幂等.
func (r *Remote) PurgeFolder(ctx context.Context, user, id string) error {
	dbx := r.db.GetDB().WithContext(ctx)
	if err := dbx.Unscoped().Where("id = ? AND user = ?", id, user).Delete(&model.Folder{}).Error; err != nil {
		return fmt.Errorf("purge folder: %w", err)
	}

	return nil
}

// GetProfile 读取用户资料，不存在时返回零值资料.
func (r *Remote) GetProfile(ctx context.Context, user string) (model.Profile, error) {
	var profile model.Profile

	dbx := r.db.GetDB().WithContext(ctx)
	err := dbx.Where("user = ?", user).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Profile{User: user}, nil
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	return profile, nil
}

// SaveProfile 写入用户资料（不存在则创建）.
func (r *Remote) SaveProfile(ctx context.Context, profile *model.Profile) error {
	dbx := r.db.GetDB().WithContext(ctx)
	if err := dbx.Save(profile).Error; err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	return nil
}

// CreateShare 写入分享记录.
func (r *Remote) CreateShare(ctx context.Context, share *model.Share) error {
	dbx := r.db.GetDB().WithContext(ctx)
	if err := dbx.Create(share).Error; err != nil {
		return fmt.Errorf("create share: %w", err)
	}

	return nil
}

// GetShare 按分享标识读取记录.
func (r *Remote) GetShare(ctx context.Context, shareID string) (model.Share, error) {
	var share model.Share

	dbx := r.db.GetDB().WithContext(ctx)
	if err := dbx.Where("share_id = ?", shareID).First(&share).Error; err != nil {
		return model.Share{}, fmt.Errorf("get share: %w", err)
	}

	return share, nil
}

// ListShares 列出用户的全部分享.
func (r *Remote) ListShares(ctx context.Context, owner string) ([]model.Share, error) {
	var shares []model.Share

	dbx := r.db.GetDB().WithContext(ctx)
	if err := dbx.Where("owner = ?", owner).Order("created_at DESC").Find(&shares).Error; err != nil {
		return nil, fmt.Errorf("list shares: %w", err)
	}

	return shares, nil
}

// DeleteShare 删除分享记录.
func (r *Remote) DeleteShare(ctx context.Context, owner, shareID string) error {
	dbx := r.db.GetDB().WithContext(ctx)
	if err := dbx.Where("share_id = ? AND owner = ?", shareID, owner).Delete(&model.Share{}).Error; err != nil {
		return fmt.Errorf("delete share: %w", err)
	}

	return nil
}

// DeleteSharesForItem 删除指向某条目的所有分享.
func (r *Remote) DeleteSharesForItem(ctx context.Context, owner, itemID string) error {
	dbx := r.db.GetDB().WithContext(ctx)
	if err := dbx.Where("owner = ? AND item_id = ?", owner, itemID).Delete(&model.Share{}).Error; err != nil {
		return fmt.Errorf("delete shares for item: %w", err)
	}

	return nil
}

// FilesInFolder 列出文件夹的直接子文件.
func (r *Remote) FilesInFolder(ctx context.Context, user, folderID string) ([]model.File, error) {
	var files []model.File

	dbx := r.db.GetDB().WithContext(ctx)
	if err := dbx.Where("user = ? AND folder_id = ?", user, folderID).
		Order("created_at DESC").Find(&files).Error; err != nil {
		return nil, fmt.Errorf("files in folder: %w", err)
	}

	return files, nil
}

// Subfolders 列出文件夹的直接子文件夹.
func (r *Remote) Subfolders(ctx context.Context, user, folderID string) ([]model.Folder, error) {
	var folders []model.Folder

	dbx := r.db.GetDB().WithContext(ctx)
	if err := dbx.Where("user = ? AND parent_folder_id = ?", user, folderID).
		Order("created_at DESC").Find(&folders).Error; err != nil {
		return nil, fmt.Errorf("subfolders: %w", err)
	}

	return folders, nil
}

// UploadBlob 上传数据块.
func (r *Remote) UploadBlob(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	opts := minio.PutObjectOptions{ContentType: contentType}

	if _, err := r.s3.PutObject(ctx, r.bucket, key, reader, size, opts); err != nil {
		return fmt.Errorf("upload blob %s: %w", key, err)
	}

	return nil
}

// DownloadBlob 下载数据块.
func (r *Remote) DownloadBlob(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := r.s3.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("download blob %s: %w", key, err)
	}

	return obj, nil
}

// RemoveBlob 删除数据块；键不存在不视为错误.
func (r *Remote) RemoveBlob(ctx context.Context, key string) error {
	err := r.s3.RemoveObject(ctx, r.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil
		}

		return fmt.Errorf("remove blob %s: %w", key, err)
	}

	return nil
}

// PublicURL 生成限时访问 URL.
func (r *Remote) PublicURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := r.s3.PresignedGetObject(ctx, r.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}

	return u.String(), nil
}

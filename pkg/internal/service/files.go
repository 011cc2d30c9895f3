package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/portafy/portafy/pkg/configs"
	"github.com/portafy/portafy/pkg/internal/model"
	"github.com/portafy/portafy/pkg/internal/store"
	"github.com/portafy/portafy/pkg/internal/types"
	"github.com/portafy/portafy/pkg/metrics"
	"github.com/portafy/portafy/pkg/queue"
)

const (
	// DefaultPresignedOpTimeout 默认预签名操作超时时间.
	DefaultPresignedOpTimeout = 15 * time.Minute
	// mimeSniffSize MIME 探测读取的头部字节数.
	mimeSniffSize = 3072
)

// FilesService 文件相关能力：创建、上传、列表、下载、预览.
type FilesService struct{ *Service }

func NewFilesService(c context.Context) *FilesService { return &FilesService{newService(c)} }

// List 列出用户全部活跃文件，按创建时间降序.
func (s *FilesService) List(ctx context.Context, user string) (types.ListFilesResponse, error) {
	sess, err := s.session(ctx, user)
	if err != nil {
		return types.ListFilesResponse{}, err
	}

	files := sess.Files()
	infos := make([]types.FileInfo, 0, len(files))
	for i := range files {
		infos = append(infos, fileInfoWithSize(&files[i]))
	}

	return types.ListFilesResponse{Total: len(infos), Files: infos}, nil
}

// Create 创建内联文件：无对象存储数据块，内容仅作预览.
func (s *FilesService) Create(ctx context.Context, user string, req *types.CreateFileRequest) (types.UploadFileResponse, error) {
	sess, err := s.session(ctx, user)
	if err != nil {
		return types.UploadFileResponse{}, err
	}

	fileType := req.Type
	if fileType == "" {
		fileType = "text/plain"
	}

	var size int64
	if req.Content != nil {
		size = int64(len(*req.Content))
	}

	file := model.File{
		ID:       uuid.NewString(),
		User:     user,
		Name:     req.Name,
		Type:     fileType,
		Size:     size,
		Content:  req.Content,
		FolderID: req.FolderID,
	}

	if err := s.store.InsertFile(ctx, &file); err != nil {
		return types.UploadFileResponse{}, err
	}

	sess.AddFile(file)
	s.publishFileCreated(user, &file)

	return types.UploadFileResponse{File: fileInfoWithSize(&file)}, nil
}

// Upload 上传文件数据块并登记文件行.
// MIME 类型从内容头部探测，显式声明的类型优先.
// 数据块上传成功但行写入失败时回收已上传的数据块.
func (s *FilesService) Upload(ctx context.Context, user, name string, folderID *string,
	reader io.Reader, size int64, declaredType string,
) (types.UploadFileResponse, error) {
	if limit := configs.GetConfig().Vault.MaxUploadBytes(); limit > 0 && size > limit {
		return types.UploadFileResponse{}, fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, size, limit)
	}

	sess, err := s.session(ctx, user)
	if err != nil {
		return types.UploadFileResponse{}, err
	}

	header := make([]byte, mimeSniffSize)
	n, err := io.ReadFull(reader, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return types.UploadFileResponse{}, fmt.Errorf("read upload header: %w", err)
	}
	header = header[:n]

	contentType := declaredType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(header).String()
	}

	body := io.MultiReader(bytes.NewReader(header), reader)

	id := uuid.NewString()
	key := store.BuildStorageKey(user, id, name)

	if err := s.store.UploadBlob(ctx, key, body, size, contentType); err != nil {
		return types.UploadFileResponse{}, err
	}

	file := model.File{
		ID:          id,
		User:        user,
		Name:        name,
		Type:        contentType,
		Size:        size,
		IsUploaded:  true,
		StoragePath: &key,
		FolderID:    folderID,
	}

	if err := s.store.InsertFile(ctx, &file); err != nil {
		// 行写入失败，回收数据块避免孤儿
		if rmErr := s.store.RemoveBlob(ctx, key); rmErr != nil {
			return types.UploadFileResponse{}, fmt.Errorf("insert failed (%w), blob cleanup also failed: %w", err, rmErr)
		}

		return types.UploadFileResponse{}, err
	}

	sess.AddFile(file)
	metrics.UploadBytes.Add(float64(size))
	s.publishFileCreated(user, &file)

	return types.UploadFileResponse{File: fileInfoWithSize(&file)}, nil
}

// Download 生成限时下载 URL.
func (s *FilesService) Download(ctx context.Context, user, id string) (types.DownloadFileResponse, error) {
	sess, err := s.session(ctx, user)
	if err != nil {
		return types.DownloadFileResponse{}, err
	}

	file, ok := sess.FileByID(id)
	if !ok {
		return types.DownloadFileResponse{}, ErrNotFound
	}

	if !file.IsUploaded || file.StoragePath == nil {
		return types.DownloadFileResponse{}, ErrNoBlob
	}

	url, err := s.store.PublicURL(ctx, *file.StoragePath, DefaultPresignedOpTimeout)
	if err != nil {
		return types.DownloadFileResponse{}, err
	}

	s.publishFileAccessed(user, &file, "download")

	return types.DownloadFileResponse{
		ID:               file.ID,
		URL:              url,
		ExpiresInSeconds: int(DefaultPresignedOpTimeout.Seconds()),
	}, nil
}

// Preview 返回文件视图（含内联预览内容）.
func (s *FilesService) Preview(ctx context.Context, user, id string) (types.FileInfo, error) {
	sess, err := s.session(ctx, user)
	if err != nil {
		return types.FileInfo{}, err
	}

	file, ok := sess.FileByID(id)
	if !ok {
		return types.FileInfo{}, ErrNotFound
	}

	s.publishFileAccessed(user, &file, "preview")

	return fileInfoWithSize(&file), nil
}

func (s *FilesService) publishFileCreated(user string, file *model.File) {
	if !s.eventsOn(itemEvents) {
		return
	}

	payload := queue.FileCreatedPayload{
		Item:        fileRef(user, file),
		Size:        file.Size,
		ContentType: file.Type,
	}
	if file.StoragePath != nil {
		payload.StoragePath = *file.StoragePath
	}

	logPublishErr(queue.PublishFileCreated(s.mqc.Publisher(), payload), queue.TopicFileCreated)
}

func (s *FilesService) publishFileAccessed(user string, file *model.File, action string) {
	if !s.eventsOn(itemEvents) {
		return
	}

	logPublishErr(queue.PublishFileAccessed(s.mqc.Publisher(), queue.FileAccessedPayload{
		Item:   fileRef(user, file),
		Action: action,
	}), queue.TopicFileAccessed)
}

// fileInfoWithSize 构建带人类可读大小的文件视图.
func fileInfoWithSize(f *model.File) types.FileInfo {
	info := types.NewFileInfo(f)
	if f.Size > 0 {
		info.SizeHuman = humanize.IBytes(uint64(f.Size))
	}

	return info
}

// Package service 实现业务逻辑：桥接 HTTP 意图、会话状态与持久层.
package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/portafy/portafy/pkg/configs"
	ctxPkg "github.com/portafy/portafy/pkg/context"
	"github.com/portafy/portafy/pkg/internal/model"
	"github.com/portafy/portafy/pkg/internal/storage/mq"
	"github.com/portafy/portafy/pkg/internal/store"
	"github.com/portafy/portafy/pkg/internal/vault"
	"github.com/portafy/portafy/pkg/queue"
)

// Service 各领域服务的公共底座：持久层、会话管理器与消息客户端.
type Service struct {
	store    store.Store
	sessions *vault.Manager
	mqc      *mq.Client
}

func newService(c context.Context) *Service {
	dbClient := ctxPkg.GetDBClient(c)
	s3Client := ctxPkg.GetS3Client(c)

	return &Service{
		store:    store.NewRemote(dbClient, s3Client, configs.GetConfig().S3.BucketName),
		sessions: ctxPkg.GetSessionManager(c),
		mqc:      ctxPkg.GetMQClient(c),
	}
}

// session 获取当前用户的会话，必要时装载.
func (s *Service) session(ctx context.Context, user string) (*vault.Session, error) {
	return s.sessions.Get(ctx, user)
}

// fileRef 构建文件事件引用.
func fileRef(user string, f *model.File) queue.ItemRef {
	ref := queue.ItemRef{
		ID:       f.ID,
		ItemType: string(model.ItemTypeFile),
		Name:     f.Name,
		User:     user,
	}
	if f.FolderID != nil {
		ref.FolderID = *f.FolderID
	}

	return ref
}

// folderRef 构建文件夹事件引用.
func folderRef(user string, f *model.Folder) queue.ItemRef {
	ref := queue.ItemRef{
		ID:       f.ID,
		ItemType: string(model.ItemTypeFolder),
		Name:     f.Name,
		User:     user,
	}
	if f.ParentFolderID != nil {
		ref.FolderID = *f.ParentFolderID
	}

	return ref
}

// entryRef 构建回收站条目的事件引用.
func entryRef(user string, e *vault.TrashEntry) queue.ItemRef {
	switch e.ItemType {
	case model.ItemTypeFile:
		return fileRef(user, e.File)
	case model.ItemTypeFolder:
		return folderRef(user, e.Folder)
	default:
		return queue.ItemRef{ID: e.ID(), User: user}
	}
}

// eventKind 事件开关类别.
type eventKind int

const (
	trashEvents eventKind = iota
	itemEvents
	profileEvents
)

// eventsOn 检查某类事件是否启用.
func (s *Service) eventsOn(kind eventKind) bool {
	if s.mqc == nil {
		return false
	}

	ev := configs.GetConfig().Events
	if !ev.Enabled {
		return false
	}

	switch kind {
	case trashEvents:
		return ev.TrashEvents
	case itemEvents:
		return ev.ItemEvents
	case profileEvents:
		return ev.ProfileEvents
	default:
		return false
	}
}

// logPublishErr 事件发布失败只记日志，不影响主流程.
func logPublishErr(err error, topic string) {
	if err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("发布领域事件失败")
	}
}

package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/portafy/portafy/pkg/internal/model"
	"github.com/portafy/portafy/pkg/internal/types"
	"github.com/portafy/portafy/pkg/internal/vault"
	"github.com/portafy/portafy/pkg/queue"
)

// TrashService 回收站能力：移入、还原、彻底删除、清空.
// 集合一致性由会话层保证，这里负责远端行、数据块与分享的联动.
type TrashService struct{ *Service }

func NewTrashService(c context.Context) *TrashService { return &TrashService{newService(c)} }

// List 列出回收站条目，最近删除的排最前.
func (s *TrashService) List(ctx context.Context, user string) (types.TrashListResponse, error) {
	sess, err := s.session(ctx, user)
	if err != nil {
		return types.TrashListResponse{}, err
	}

	entries := sess.Trash()
	infos := make([]types.TrashEntryInfo, 0, len(entries))
	for i := range entries {
		infos = append(infos, types.NewTrashEntryInfo(&entries[i]))
	}

	return types.TrashListResponse{Total: len(infos), Entries: infos}, nil
}

// MoveToTrash 把条目移入回收站.
// 远端行先被软删除，确认成功后条目才进入会话回收站；
// 远端失败时活跃集合保持原样.文件夹携带全部后代逐条入回收站，
// 每个后代之后都可单独还原.数据块保留，彻底删除时才释放.
func (s *TrashService) MoveToTrash(ctx context.Context, user, id string) (types.TrashActionResponse, error) {
	sess, err := s.session(ctx, user)
	if err != nil {
		return types.TrashActionResponse{}, err
	}

	// 文件路径
	if _, ok := sess.FileByID(id); ok {
		if err := s.store.DeleteFile(ctx, user, id); err != nil {
			return types.TrashActionResponse{}, err
		}

		entry, ok, err := sess.MoveFileToTrash(ctx, id)
		if err != nil {
			return types.TrashActionResponse{}, err
		}
		if !ok {
			return types.TrashActionResponse{Affected: 0, Message: "already removed"}, nil
		}

		s.publishMoved(user, &entry, false)

		return types.TrashActionResponse{Affected: 1}, nil
	}

	// 文件夹路径（级联）：先定计划，再逐条删远端行，只有确认删除的条目入回收站.
	// 自底向上执行，父级行在全部后代删除之后才动，失败即中止.
	plan, ok := sess.PlanFolderCascade(id)
	if !ok {
		return types.TrashActionResponse{}, ErrNotFound
	}

	confirmed := make(map[string]struct{}, len(plan))

	var delErr error
	for i := len(plan) - 1; i >= 0; i-- {
		it := plan[i]

		switch it.ItemType {
		case model.ItemTypeFile:
			delErr = s.store.DeleteFile(ctx, user, it.ID)
		case model.ItemTypeFolder:
			delErr = s.store.DeleteFolder(ctx, user, it.ID)
		}

		if delErr != nil {
			log.Error().Err(delErr).Str("user", user).Str("id", it.ID).
				Msg("软删除级联条目的行失败，剩余条目保持活跃")

			break
		}

		confirmed[it.ID] = struct{}{}
	}

	ordered := lo.Filter(plan, func(it vault.CascadeItem, _ int) bool {
		_, ok := confirmed[it.ID]

		return ok
	})

	entries, err := sess.MoveConfirmedToTrash(ctx, ordered)
	if err != nil {
		return types.TrashActionResponse{}, err
	}

	for i := range entries {
		s.publishMoved(user, &entries[i], entries[i].ID() != id)
	}

	if delErr != nil {
		return types.TrashActionResponse{Affected: len(entries)}, delErr
	}

	return types.TrashActionResponse{Affected: len(entries)}, nil
}

// Restore 还原回收站条目到会话集合.
// 只还原会话态：远端行保持软删除，条目在会话存续期内可见可用.
// id 不在回收站时静默无操作.
func (s *TrashService) Restore(ctx context.Context, user, id string) (types.TrashActionResponse, error) {
	sess, err := s.session(ctx, user)
	if err != nil {
		return types.TrashActionResponse{}, err
	}

	entry, ok, err := sess.RestoreItem(ctx, id)
	if err != nil {
		return types.TrashActionResponse{}, err
	}
	if !ok {
		return types.TrashActionResponse{Affected: 0, Message: "not in trash"}, nil
	}

	if s.eventsOn(trashEvents) {
		logPublishErr(queue.PublishTrashRestored(s.mqc.Publisher(), queue.TrashRestoredPayload{
			Item:      entryRef(user, &entry),
			LocalOnly: true,
		}), queue.TopicTrashRestored)
	}

	return types.TrashActionResponse{Affected: 1}, nil
}

// DeletePermanently 彻底删除回收站条目：硬删行、释放数据块、失效分享.
// 幂等：id 不在回收站时无操作.
func (s *TrashService) DeletePermanently(ctx context.Context, user, id string) (types.TrashActionResponse, error) {
	sess, err := s.session(ctx, user)
	if err != nil {
		return types.TrashActionResponse{}, err
	}

	entry, ok, err := sess.DeletePermanently(ctx, id)
	if err != nil {
		return types.TrashActionResponse{}, err
	}
	if !ok {
		return types.TrashActionResponse{Affected: 0, Message: "not in trash"}, nil
	}

	s.reap(ctx, user, &entry)

	return types.TrashActionResponse{Affected: 1}, nil
}

// Empty 清空回收站.
func (s *TrashService) Empty(ctx context.Context, user string) (types.TrashActionResponse, error) {
	sess, err := s.session(ctx, user)
	if err != nil {
		return types.TrashActionResponse{}, err
	}

	entries, err := sess.EmptyTrash(ctx)
	if err != nil {
		return types.TrashActionResponse{}, err
	}

	for i := range entries {
		s.reap(ctx, user, &entries[i])
	}

	return types.TrashActionResponse{Affected: len(entries)}, nil
}

// reap 回收单个已彻底删除的条目：硬删行、释放数据块、失效分享.
// 各步骤尽力而为，失败只记日志.
func (s *TrashService) reap(ctx context.Context, user string, entry *vault.TrashEntry) {
	id := entry.ID()
	blobRemoved := false

	switch entry.ItemType {
	case model.ItemTypeFile:
		if err := s.store.PurgeFile(ctx, user, id); err != nil {
			log.Error().Err(err).Str("user", user).Str("id", id).Msg("硬删除文件行失败")
		}

		// 存储键是释放数据块的唯一凭据
		if entry.File.IsUploaded && entry.File.StoragePath != nil {
			if err := s.store.RemoveBlob(ctx, *entry.File.StoragePath); err != nil {
				log.Error().Err(err).Str("user", user).Str("key", *entry.File.StoragePath).
					Msg("释放数据块失败")
			} else {
				blobRemoved = true
			}
		}
	case model.ItemTypeFolder:
		if err := s.store.PurgeFolder(ctx, user, id); err != nil {
			log.Error().Err(err).Str("user", user).Str("id", id).Msg("硬删除文件夹行失败")
		}
	}

	if err := s.store.DeleteSharesForItem(ctx, user, id); err != nil {
		log.Error().Err(err).Str("user", user).Str("id", id).Msg("失效分享失败")
	}

	if s.eventsOn(trashEvents) {
		logPublishErr(queue.PublishTrashPurged(s.mqc.Publisher(), queue.TrashPurgedPayload{
			Item:        entryRef(user, entry),
			BlobRemoved: blobRemoved,
		}), queue.TopicTrashPurged)
	}
}

func (s *TrashService) publishMoved(user string, entry *vault.TrashEntry, cascade bool) {
	if !s.eventsOn(trashEvents) {
		return
	}

	logPublishErr(queue.PublishTrashMoved(s.mqc.Publisher(), queue.TrashMovedPayload{
		Item:      entryRef(user, entry),
		Cascade:   cascade,
		DeletedAt: entry.DeletedAt,
	}), queue.TopicTrashMoved)
}

package service

import (
	"context"
	"fmt"

	"github.com/portafy/portafy/pkg/internal/types"
	"github.com/portafy/portafy/pkg/internal/vault"
	"github.com/portafy/portafy/pkg/queue"
)

// ItemsService 对文件与文件夹一视同仁的条目操作：星标、重命名、移动.
type ItemsService struct{ *Service }

func NewItemsService(c context.Context) *ItemsService { return &ItemsService{newService(c)} }

// Star 设置条目星标状态.
func (s *ItemsService) Star(ctx context.Context, user, id string, starred bool) error {
	sess, err := s.session(ctx, user)
	if err != nil {
		return err
	}

	if file, ok := sess.FileByID(id); ok {
		file.Starred = starred
		if err := s.store.UpdateFile(ctx, &file); err != nil {
			return err
		}

		sess.PatchFile(file)
		s.publishStarred(user, fileRef(user, &file), starred)

		return nil
	}

	if folder, ok := sess.FolderByID(id); ok {
		folder.Starred = starred
		if err := s.store.UpdateFolder(ctx, &folder); err != nil {
			return err
		}

		sess.PatchFolder(folder)
		s.publishStarred(user, folderRef(user, &folder), starred)

		return nil
	}

	return ErrNotFound
}

// Rename 重命名条目.已上传文件的存储键不随名称变化.
func (s *ItemsService) Rename(ctx context.Context, user, id, name string) error {
	sess, err := s.session(ctx, user)
	if err != nil {
		return err
	}

	if file, ok := sess.FileByID(id); ok {
		oldName := file.Name
		file.Name = name

		if err := s.store.UpdateFile(ctx, &file); err != nil {
			return err
		}

		sess.PatchFile(file)
		s.publishRenamed(user, fileRef(user, &file), oldName)

		return nil
	}

	if folder, ok := sess.FolderByID(id); ok {
		oldName := folder.Name
		folder.Name = name

		if err := s.store.UpdateFolder(ctx, &folder); err != nil {
			return err
		}

		sess.PatchFolder(folder)
		s.publishRenamed(user, folderRef(user, &folder), oldName)

		return nil
	}

	return ErrNotFound
}

// Move 把条目移动到目标文件夹；target 为 nil 表示移动到根级.
func (s *ItemsService) Move(ctx context.Context, user, id string, target *string) error {
	sess, err := s.session(ctx, user)
	if err != nil {
		return err
	}

	// 目标必须是活跃文件夹
	if target != nil {
		if *target == id {
			return fmt.Errorf("cannot move a folder into itself")
		}

		if _, ok := sess.FolderByID(*target); !ok {
			return fmt.Errorf("target folder: %w", ErrNotFound)
		}
	}

	if file, ok := sess.FileByID(id); ok {
		from := file.FolderID
		file.FolderID = target

		if err := s.store.UpdateFile(ctx, &file); err != nil {
			return err
		}

		sess.PatchFile(file)
		s.publishMoved(user, fileRef(user, &file), from, target)

		return nil
	}

	if folder, ok := sess.FolderByID(id); ok {
		if target != nil && s.createsCycle(sess, id, *target) {
			return fmt.Errorf("cannot move a folder into its own subtree")
		}

		from := folder.ParentFolderID
		folder.ParentFolderID = target

		if err := s.store.UpdateFolder(ctx, &folder); err != nil {
			return err
		}

		sess.PatchFolder(folder)
		s.publishMoved(user, folderRef(user, &folder), from, target)

		return nil
	}

	return ErrNotFound
}

// MoveBatch 批量移动，逐条处理并汇总失败原因.
func (s *ItemsService) MoveBatch(ctx context.Context, user string, req *types.MoveItemsRequest) types.MoveItemsResponse {
	resp := types.MoveItemsResponse{}

	for _, id := range req.IDs {
		if err := s.Move(ctx, user, id, req.TargetFolderID); err != nil {
			if resp.Errors == nil {
				resp.Errors = make(map[string]string)
			}

			resp.Errors[id] = err.Error()

			continue
		}

		resp.Moved++
	}

	return resp
}

// createsCycle 检查把 folderID 移入 target 是否构成环：
// target 是 folderID 或位于其子树内.
func (s *ItemsService) createsCycle(sess *vault.Session, folderID, target string) bool {
	cur := target
	for depth := 0; depth < 4096; depth++ {
		if cur == folderID {
			return true
		}

		folder, ok := sess.FolderByID(cur)
		if !ok || folder.ParentFolderID == nil {
			return false
		}

		cur = *folder.ParentFolderID
	}

	return true
}

func (s *ItemsService) publishStarred(user string, ref queue.ItemRef, starred bool) {
	if !s.eventsOn(itemEvents) {
		return
	}

	logPublishErr(queue.PublishItemStarred(s.mqc.Publisher(), queue.ItemStarredPayload{
		Item:    ref,
		Starred: starred,
	}), queue.TopicItemStarred)
}

func (s *ItemsService) publishRenamed(user string, ref queue.ItemRef, oldName string) {
	if !s.eventsOn(itemEvents) {
		return
	}

	logPublishErr(queue.PublishItemRenamed(s.mqc.Publisher(), queue.ItemRenamedPayload{
		Item:    ref,
		OldName: oldName,
	}), queue.TopicItemRenamed)
}

func (s *ItemsService) publishMoved(user string, ref queue.ItemRef, from, to *string) {
	if !s.eventsOn(itemEvents) {
		return
	}

	payload := queue.ItemMovedPayload{Item: ref}
	if from != nil {
		payload.FromFolderID = *from
	}
	if to != nil {
		payload.ToFolderID = *to
	}

	logPublishErr(queue.PublishItemMoved(s.mqc.Publisher(), payload), queue.TopicItemMoved)
}

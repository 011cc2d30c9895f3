package vault

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/portafy/portafy/pkg/internal/model"
	"github.com/portafy/portafy/pkg/internal/store"
	"github.com/portafy/portafy/pkg/metrics"
)

// Session 单个用户的内存态：文件、文件夹、回收站三个集合.
// 不变量：任一 id 至多出现在一个集合中；活跃集合按创建时间降序.
// 所有方法并发安全.
type Session struct {
	mu sync.Mutex

	user    string
	files   []model.File
	folders []model.Folder
	trash   []TrashEntry

	trashStore *TrashStore

	startedAt  time.Time
	lastActive time.Time
}

// NewSession 创建空会话，集合通过 Load 填充.
func NewSession(user string, trashStore *TrashStore) *Session {
	now := time.Now()

	return &Session{
		user:       user,
		files:      []model.File{},
		folders:    []model.Folder{},
		trash:      []TrashEntry{},
		trashStore: trashStore,
		startedAt:  now,
		lastActive: now,
	}
}

// User 返回会话归属用户.
func (s *Session) User() string {
	return s.user
}

// StartedAt 返回会话建立时间.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Touch 刷新最近活跃时间.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()
}

// LastActive 返回最近活跃时间.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastActive
}

// Load 从持久层装载集合状态.
// 活跃集合取自数据库，回收站取自键值槽位；同时出现在两边的 id 以回收站为准.
func (s *Session) Load(ctx context.Context, st store.Store) error {
	files, err := st.ListFiles(ctx, s.user)
	if err != nil {
		return err
	}

	folders, err := st.ListFolders(ctx, s.user)
	if err != nil {
		return err
	}

	trash, err := s.trashStore.Load(ctx)
	if err != nil {
		return err
	}

	trashed := make(map[string]struct{}, len(trash))
	for i := range trash {
		trashed[trash[i].ID()] = struct{}{}
	}

	files = lo.Reject(files, func(f model.File, _ int) bool {
		_, ok := trashed[f.ID]

		return ok
	})
	folders = lo.Reject(folders, func(f model.Folder, _ int) bool {
		_, ok := trashed[f.ID]

		return ok
	})

	sortByCreatedAtDesc[model.File](files)
	sortByCreatedAtDesc[model.Folder](folders)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.files = files
	s.folders = folders
	s.trash = trash
	s.lastActive = time.Now()

	return nil
}

// Files 返回文件集合副本.
func (s *Session) Files() []model.File {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.File(nil), s.files...)
}

// Folders 返回文件夹集合副本.
func (s *Session) Folders() []model.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.Folder(nil), s.folders...)
}

// Trash 返回回收站副本，最近删除的排在最前.
func (s *Session) Trash() []TrashEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]TrashEntry, len(s.trash))
	copy(out, s.trash)

	return out
}

// FileByID 查找活跃文件.
func (s *Session) FileByID(id string) (model.File, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return findByID[model.File](s.files, id)
}

// FolderByID 查找活跃文件夹.
func (s *Session) FolderByID(id string) (model.Folder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return findByID[model.Folder](s.folders, id)
}

// AddFile 加入新文件并保持降序.
func (s *Session) AddFile(file model.File) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files, _ = removeByID[model.File](s.files, file.ID)
	s.files = insertSorted[model.File](s.files, file)
}

// AddFolder 加入新文件夹并保持降序.
func (s *Session) AddFolder(folder model.Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.folders, _ = removeByID[model.Folder](s.folders, folder.ID)
	s.folders = insertSorted[model.Folder](s.folders, folder)
}

// PatchFile 用新快照替换同 id 文件，返回是否命中.
func (s *Session) PatchFile(file model.File) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !replaceByID[model.File](s.files, file) {
		return false
	}

	sortByCreatedAtDesc[model.File](s.files)

	return true
}

// PatchFolder 用新快照替换同 id 文件夹，返回是否命中.
func (s *Session) PatchFolder(folder model.Folder) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !replaceByID[model.Folder](s.folders, folder) {
		return false
	}

	sortByCreatedAtDesc[model.Folder](s.folders)

	return true
}

// MoveFileToTrash 把活跃文件移入回收站并持久化.
// 调用方需先确认远端行已删除；id 不存在时返回 false，不报错.
func (s *Session) MoveFileToTrash(ctx context.Context, id string) (TrashEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, ok := findByID[model.File](s.files, id)
	if !ok {
		return TrashEntry{}, false, nil
	}

	s.files, _ = removeByID[model.File](s.files, id)

	entry := NewFileEntry(file, time.Now())
	s.trash = append([]TrashEntry{entry}, s.trash...)

	metrics.TrashOperations.WithLabelValues("move", string(model.ItemTypeFile)).Inc()

	return entry, true, s.flushLocked(ctx)
}

// CascadeItem 级联删除计划中的一项.
type CascadeItem struct {
	ItemType model.ItemType
	ID       string
}

// PlanFolderCascade 收集文件夹及其全部后代的删除计划，不修改任何集合.
// 首元素是文件夹自身，其余为后代，父级总排在其后代之前；
// id 不是活跃文件夹时返回 false.
func (s *Session) PlanFolderCascade(id string) ([]CascadeItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := findByID[model.Folder](s.folders, id); !ok {
		return nil, false
	}

	plan := []CascadeItem{{ItemType: model.ItemTypeFolder, ID: id}}

	// 逐层收集后代：先子文件，再递归子文件夹
	pending := []string{id}
	for len(pending) > 0 {
		parent := pending[0]
		pending = pending[1:]

		children := lo.Filter(s.files, func(f model.File, _ int) bool {
			return f.FolderID != nil && *f.FolderID == parent
		})
		for _, child := range children {
			plan = append(plan, CascadeItem{ItemType: model.ItemTypeFile, ID: child.ID})
		}

		subs := lo.Filter(s.folders, func(f model.Folder, _ int) bool {
			return f.ParentFolderID != nil && *f.ParentFolderID == parent
		})
		for _, sub := range subs {
			plan = append(plan, CascadeItem{ItemType: model.ItemTypeFolder, ID: sub.ID})
			pending = append(pending, sub.ID)
		}
	}

	return plan, true
}

// MoveConfirmedToTrash 把一批远端已确认删除的条目移入回收站并持久化.
// 每个条目生成独立记录，之后可以单独还原；批内顺序保持，
// 不在活跃集合中的 id 跳过.空批不落盘.
func (s *Session) MoveConfirmedToTrash(ctx context.Context, items []CascadeItem) ([]TrashEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	entries := make([]TrashEntry, 0, len(items))

	for _, it := range items {
		switch it.ItemType {
		case model.ItemTypeFile:
			if file, ok := findByID[model.File](s.files, it.ID); ok {
				entries = append(entries, NewFileEntry(file, now))
				s.files, _ = removeByID[model.File](s.files, it.ID)
			}
		case model.ItemTypeFolder:
			if folder, ok := findByID[model.Folder](s.folders, it.ID); ok {
				entries = append(entries, NewFolderEntry(folder, now))
				s.folders, _ = removeByID[model.Folder](s.folders, it.ID)
			}
		}
	}

	if len(entries) == 0 {
		return nil, nil
	}

	// 最近删除的排最前，保持批内顺序
	s.trash = append(append([]TrashEntry{}, entries...), s.trash...)

	for i := range entries {
		metrics.TrashOperations.WithLabelValues("move", string(entries[i].ItemType)).Inc()
	}

	return entries, s.flushLocked(ctx)
}

// RestoreItem 把回收站条目还原到对应活跃集合.
// 只改内存态与回收站槽位，不触达数据库；id 不存在时静默返回 false.
func (s *Session) RestoreItem(ctx context.Context, id string) (TrashEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := trashIndexOf(s.trash, id)
	if !ok {
		return TrashEntry{}, false, nil
	}

	entry := s.trash[idx]
	s.trash = append(s.trash[:idx], s.trash[idx+1:]...)

	switch entry.ItemType {
	case model.ItemTypeFile:
		s.files = insertSorted[model.File](s.files, *entry.File)
	case model.ItemTypeFolder:
		s.folders = insertSorted[model.Folder](s.folders, *entry.Folder)
	}

	metrics.TrashOperations.WithLabelValues("restore", string(entry.ItemType)).Inc()

	return entry, true, s.flushLocked(ctx)
}

// DeletePermanently 从回收站彻底移除条目并持久化.
// 幂等：id 不存在时返回 false，不报错.数据块释放由调用方依据返回条目处理.
func (s *Session) DeletePermanently(ctx context.Context, id string) (TrashEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := trashIndexOf(s.trash, id)
	if !ok {
		return TrashEntry{}, false, nil
	}

	entry := s.trash[idx]
	s.trash = append(s.trash[:idx], s.trash[idx+1:]...)

	metrics.TrashOperations.WithLabelValues("purge", string(entry.ItemType)).Inc()

	return entry, true, s.flushLocked(ctx)
}

// EmptyTrash 清空回收站并持久化，返回被移除的全部条目.
func (s *Session) EmptyTrash(ctx context.Context) ([]TrashEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.trash
	s.trash = []TrashEntry{}

	for i := range entries {
		metrics.TrashOperations.WithLabelValues("purge", string(entries[i].ItemType)).Inc()
	}

	return entries, s.flushLocked(ctx)
}

// Search 对活跃集合应用过滤条件，返回匹配的文件与文件夹.
func (s *Session) Search(f Filters) ([]model.File, []model.Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return FilterFiles(s.files, f), FilterFolders(s.folders, f)
}

// flushLocked 把回收站快照写回槽位，调用方必须持有锁.
func (s *Session) flushLocked(ctx context.Context) error {
	if err := s.trashStore.Flush(ctx, s.trash); err != nil {
		log.Error().Err(err).Str("user", s.user).Str("slot", s.trashStore.Slot()).
			Msg("回收站快照写回失败")

		return err
	}

	return nil
}

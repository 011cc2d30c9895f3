package vault_test

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/portafy/portafy/pkg/internal/model"
	"github.com/portafy/portafy/pkg/internal/storage/kv"
	"github.com/portafy/portafy/pkg/internal/vault"
)

// fakeStore 内存持久层，仅实现会话装载需要的部分.
type fakeStore struct {
	files   []model.File
	folders []model.Folder
}

func (f *fakeStore) ListFiles(_ context.Context, _ string) ([]model.File, error) {
	return append([]model.File(nil), f.files...), nil
}

func (f *fakeStore) ListFolders(_ context.Context, _ string) ([]model.Folder, error) {
	return append([]model.Folder(nil), f.folders...), nil
}

func (f *fakeStore) InsertFile(_ context.Context, file *model.File) error {
	f.files = append(f.files, *file)

	return nil
}

func (f *fakeStore) InsertFolder(_ context.Context, folder *model.Folder) error {
	f.folders = append(f.folders, *folder)

	return nil
}

func (f *fakeStore) UpdateFile(_ context.Context, _ *model.File) error { return nil }
func (f *fakeStore) UpdateFolder(_ context.Context, _ *model.Folder) error { return nil }
func (f *fakeStore) DeleteFile(_ context.Context, _, _ string) error { return nil }
func (f *fakeStore) DeleteFolder(_ context.Context, _, _ string) error { return nil }

func (f *fakeStore) PurgeFile(_ context.Context, _, _ string) error { return nil }
func (f *fakeStore) PurgeFolder(_ context.Context, _, _ string) error { return nil }

func (f *fakeStore) GetProfile(_ context.Context, user string) (model.Profile, error) {
	return model.Profile{User: user}, nil
}

func (f *fakeStore) SaveProfile(_ context.Context, _ *model.Profile) error { return nil }

func (f *fakeStore) CreateShare(_ context.Context, _ *model.Share) error { return nil }

func (f *fakeStore) GetShare(_ context.Context, _ string) (model.Share, error) {
	return model.Share{}, fmt.Errorf("not found")
}

func (f *fakeStore) ListShares(_ context.Context, _ string) ([]model.Share, error) {
	return nil, nil
}

func (f *fakeStore) DeleteShare(_ context.Context, _, _ string) error { return nil }
func (f *fakeStore) DeleteSharesForItem(_ context.Context, _, _ string) error { return nil }

func (f *fakeStore) FilesInFolder(_ context.Context, _, _ string) ([]model.File, error) {
	return nil, nil
}

func (f *fakeStore) Subfolders(_ context.Context, _, _ string) ([]model.Folder, error) {
	return nil, nil
}

func (f *fakeStore) UploadBlob(_ context.Context, _ string, _ io.Reader, _ int64, _ string) error {
	return nil
}

func (f *fakeStore) DownloadBlob(_ context.Context, _ string) (io.ReadCloser, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeStore) RemoveBlob(_ context.Context, _ string) error { return nil }

func (f *fakeStore) PublicURL(_ context.Context, _ string, _ time.Duration) (string, error) {
	return "", nil
}

func newMemoryKV(t *testing.T) kv.KVStore {
	t.Helper()

	store, err := kv.NewKVStore(context.Background(), kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func testFile(id, name string, createdAt time.Time) model.File {
	return model.File{
		ID:        id,
		User:      "alice@example.com",
		Name:      name,
		Type:      "text/plain",
		Size:      10,
		CreatedAt: createdAt,
	}
}

func testFolder(id, name string, createdAt time.Time) model.Folder {
	return model.Folder{
		ID:        id,
		User:      "alice@example.com",
		Name:      name,
		CreatedAt: createdAt,
	}
}

func loadSession(t *testing.T, st *fakeStore, kvs kv.KVStore) *vault.Session {
	t.Helper()

	ts := vault.NewTrashStore(kvs, "appTrash:alice@example.com", true)
	sess := vault.NewSession("alice@example.com", ts)

	if err := sess.Load(context.Background(), st); err != nil {
		t.Fatalf("load session: %v", err)
	}

	return sess
}

// TestMoveFileToTrash 验证移入回收站后活跃集合与回收站的互斥.
func TestMoveFileToTrash(t *testing.T) {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	st := &fakeStore{files: []model.File{
		testFile("f1", "report.txt", base),
		testFile("f2", "notes.txt", base.Add(time.Minute)),
	}}
	sess := loadSession(t, st, newMemoryKV(t))

	before := time.Now()

	entry, ok, err := sess.MoveFileToTrash(ctx, "f1")
	if err != nil {
		t.Fatalf("move to trash: %v", err)
	}
	if !ok {
		t.Fatal("expected f1 to be found")
	}

	if entry.ItemType != model.ItemTypeFile || entry.File == nil || entry.File.ID != "f1" {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.DeletedAt.Before(before) {
		t.Errorf("deleted_at %v earlier than operation time %v", entry.DeletedAt, before)
	}

	for _, f := range sess.Files() {
		if f.ID == "f1" {
			t.Error("f1 still present in live files")
		}
	}

	trash := sess.Trash()
	if len(trash) != 1 || trash[0].ID() != "f1" {
		t.Errorf("unexpected trash state: %+v", trash)
	}
}

// TestMoveFileToTrashAbsent 验证未知 id 静默无操作.
func TestMoveFileToTrashAbsent(t *testing.T) {
	sess := loadSession(t, &fakeStore{}, newMemoryKV(t))

	_, ok, err := sess.MoveFileToTrash(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected miss for unknown id")
	}
}

// TestMoveFolderCascade 验证文件夹删除时后代逐条入回收站且可单独还原.
func TestMoveFolderCascade(t *testing.T) {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	top := testFolder("d1", "docs", base)
	sub := testFolder("d2", "archive", base.Add(time.Minute))
	sub.ParentFolderID = strPtr("d1")

	inTop := testFile("f1", "a.txt", base.Add(2*time.Minute))
	inTop.FolderID = strPtr("d1")
	inSub := testFile("f2", "b.txt", base.Add(3*time.Minute))
	inSub.FolderID = strPtr("d2")
	loose := testFile("f3", "c.txt", base.Add(4*time.Minute))

	st := &fakeStore{
		files:   []model.File{inTop, inSub, loose},
		folders: []model.Folder{top, sub},
	}
	sess := loadSession(t, st, newMemoryKV(t))

	plan, ok := sess.PlanFolderCascade("d1")
	if !ok {
		t.Fatal("d1 should be plannable")
	}
	if len(plan) != 4 {
		t.Fatalf("expected 4 plan items (d1, f1, d2, f2), got %d", len(plan))
	}
	if plan[0].ID != "d1" {
		t.Errorf("first plan item should be the folder itself, got %s", plan[0].ID)
	}

	// 计划阶段只读，集合不动
	if len(sess.Folders()) != 2 || len(sess.Files()) != 3 {
		t.Fatal("planning must not touch the collections")
	}

	entries, err := sess.MoveConfirmedToTrash(ctx, plan)
	if err != nil {
		t.Fatalf("cascade delete: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	if entries[0].ID() != "d1" {
		t.Errorf("first entry should be the folder itself, got %s", entries[0].ID())
	}

	if len(sess.Folders()) != 0 {
		t.Errorf("folders not emptied: %+v", sess.Folders())
	}
	files := sess.Files()
	if len(files) != 1 || files[0].ID != "f3" {
		t.Errorf("only f3 should survive, got %+v", files)
	}

	// 后代可以单独还原，不需要还原整个文件夹
	restored, ok, err := sess.RestoreItem(ctx, "f2")
	if err != nil || !ok {
		t.Fatalf("restore descendant: ok=%v err=%v", ok, err)
	}
	if restored.ItemType != model.ItemTypeFile {
		t.Errorf("unexpected restored type: %s", restored.ItemType)
	}

	files = sess.Files()
	if len(files) != 2 {
		t.Fatalf("expected f2 back alongside f3, got %+v", files)
	}
}

// TestRestoreOrderIndependence 验证还原顺序不影响最终排序：
// 活跃集合始终按创建时间降序.
func TestRestoreOrderIndependence(t *testing.T) {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	st := &fakeStore{files: []model.File{
		testFile("f1", "oldest.txt", base),
		testFile("f2", "middle.txt", base.Add(time.Minute)),
		testFile("f3", "newest.txt", base.Add(2*time.Minute)),
	}}
	sess := loadSession(t, st, newMemoryKV(t))

	for _, id := range []string{"f1", "f3", "f2"} {
		if _, ok, err := sess.MoveFileToTrash(ctx, id); err != nil || !ok {
			t.Fatalf("trash %s: ok=%v err=%v", id, ok, err)
		}
	}

	// 按与删除无关的顺序还原
	for _, id := range []string{"f2", "f1", "f3"} {
		if _, ok, err := sess.RestoreItem(ctx, id); err != nil || !ok {
			t.Fatalf("restore %s: ok=%v err=%v", id, ok, err)
		}
	}

	files := sess.Files()
	want := []string{"f3", "f2", "f1"}
	for i, id := range want {
		if files[i].ID != id {
			t.Errorf("position %d: want %s got %s", i, id, files[i].ID)
		}
	}

	if len(sess.Trash()) != 0 {
		t.Errorf("trash should be empty, got %+v", sess.Trash())
	}
}

// TestRestoreAbsentNoop 验证还原未知 id 是静默无操作.
func TestRestoreAbsentNoop(t *testing.T) {
	sess := loadSession(t, &fakeStore{}, newMemoryKV(t))

	_, ok, err := sess.RestoreItem(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected miss for unknown id")
	}
}

// TestDeletePermanentlyIdempotent 验证彻底删除及其幂等性.
func TestDeletePermanentlyIdempotent(t *testing.T) {
	ctx := context.Background()

	st := &fakeStore{files: []model.File{testFile("f1", "x.txt", time.Now())}}
	sess := loadSession(t, st, newMemoryKV(t))

	if _, ok, err := sess.MoveFileToTrash(ctx, "f1"); err != nil || !ok {
		t.Fatalf("trash f1: ok=%v err=%v", ok, err)
	}

	entry, ok, err := sess.DeletePermanently(ctx, "f1")
	if err != nil || !ok {
		t.Fatalf("purge f1: ok=%v err=%v", ok, err)
	}
	if entry.ID() != "f1" {
		t.Errorf("unexpected entry: %+v", entry)
	}

	// 第二次删除同一 id：无操作，不报错
	_, ok, err = sess.DeletePermanently(ctx, "f1")
	if err != nil {
		t.Fatalf("second purge errored: %v", err)
	}
	if ok {
		t.Error("second purge should be a no-op")
	}

	if len(sess.Trash()) != 0 {
		t.Errorf("trash not empty: %+v", sess.Trash())
	}
}

// TestPartitionInvariant 验证任意操作序列后 id 不会同时出现在活跃集合与回收站.
func TestPartitionInvariant(t *testing.T) {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	st := &fakeStore{files: []model.File{
		testFile("f1", "a.txt", base),
		testFile("f2", "b.txt", base.Add(time.Minute)),
	}}
	sess := loadSession(t, st, newMemoryKV(t))

	sess.MoveFileToTrash(ctx, "f1")
	sess.RestoreItem(ctx, "f1")
	sess.MoveFileToTrash(ctx, "f2")
	sess.MoveFileToTrash(ctx, "f1")
	sess.RestoreItem(ctx, "f2")

	live := map[string]struct{}{}
	for _, f := range sess.Files() {
		live[f.ID] = struct{}{}
	}

	for _, e := range sess.Trash() {
		if _, dup := live[e.ID()]; dup {
			t.Errorf("id %s present in both live and trash", e.ID())
		}
	}
}

// TestTrashPersistenceAcrossSessions 验证回收站经 KV 槽位在会话间存续，
// 且落盘条目的预览内容被剥离.
func TestTrashPersistenceAcrossSessions(t *testing.T) {
	ctx := context.Background()
	kvs := newMemoryKV(t)
	base := time.Now().Add(-time.Hour)

	file := testFile("f1", "preview.txt", base)
	file.Content = strPtr("data:text/plain;base64,aGVsbG8=")

	st := &fakeStore{files: []model.File{file}}
	sess := loadSession(t, st, kvs)

	if _, ok, err := sess.MoveFileToTrash(ctx, "f1"); err != nil || !ok {
		t.Fatalf("trash f1: ok=%v err=%v", ok, err)
	}

	// 新会话从同一槽位装载
	reloaded := loadSession(t, st, kvs)

	trash := reloaded.Trash()
	if len(trash) != 1 || trash[0].ID() != "f1" {
		t.Fatalf("trash did not survive reload: %+v", trash)
	}
	if trash[0].File.Content != nil {
		t.Error("preview content should be stripped on flush")
	}

	// f1 的数据库行仍在 fakeStore，但回收站优先
	for _, f := range reloaded.Files() {
		if f.ID == "f1" {
			t.Error("trashed id leaked into live files after reload")
		}
	}
}

// TestEmptyTrash 验证清空回收站返回全部条目并持久化空集合.
func TestEmptyTrash(t *testing.T) {
	ctx := context.Background()
	kvs := newMemoryKV(t)
	base := time.Now().Add(-time.Hour)

	st := &fakeStore{files: []model.File{
		testFile("f1", "a.txt", base),
		testFile("f2", "b.txt", base.Add(time.Minute)),
	}}
	sess := loadSession(t, st, kvs)

	sess.MoveFileToTrash(ctx, "f1")
	sess.MoveFileToTrash(ctx, "f2")

	entries, err := sess.EmptyTrash(ctx)
	if err != nil {
		t.Fatalf("empty trash: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 purged entries, got %d", len(entries))
	}

	reloaded := loadSession(t, &fakeStore{}, kvs)
	if len(reloaded.Trash()) != 0 {
		t.Errorf("slot should hold empty collection, got %+v", reloaded.Trash())
	}
}

// TestAddAndPatch 验证新增与就地更新保持降序排序.
func TestAddAndPatch(t *testing.T) {
	base := time.Now().Add(-time.Hour)
	sess := loadSession(t, &fakeStore{}, newMemoryKV(t))

	sess.AddFile(testFile("f1", "a.txt", base))
	sess.AddFile(testFile("f2", "b.txt", base.Add(time.Minute)))

	files := sess.Files()
	if files[0].ID != "f2" || files[1].ID != "f1" {
		t.Errorf("files not in created_at desc order: %+v", files)
	}

	renamed := files[1]
	renamed.Name = "renamed.txt"
	if !sess.PatchFile(renamed) {
		t.Fatal("patch should hit f1")
	}

	got, ok := sess.FileByID("f1")
	if !ok || got.Name != "renamed.txt" {
		t.Errorf("rename not applied: %+v", got)
	}

	if sess.PatchFile(testFile("nope", "x", base)) {
		t.Error("patch of unknown id should miss")
	}
}

func strPtr(s string) *string { return &s }

package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/portafy/portafy/pkg/configs"
	"github.com/portafy/portafy/pkg/internal/model"
	"github.com/portafy/portafy/pkg/internal/storage/kv"
	"github.com/portafy/portafy/pkg/internal/vault"
)

// failingStore 在指定 id 上拒绝远端删除的持久层桩.
type failingStore struct {
	*memStore

	failFiles   map[string]struct{}
	failFolders map[string]struct{}
}

func (f *failingStore) DeleteFile(ctx context.Context, user, id string) error {
	if _, ok := f.failFiles[id]; ok {
		return fmt.Errorf("delete file %s: connection reset", id)
	}

	return f.memStore.DeleteFile(ctx, user, id)
}

func (f *failingStore) DeleteFolder(ctx context.Context, user, id string) error {
	if _, ok := f.failFolders[id]; ok {
		return fmt.Errorf("delete folder %s: connection reset", id)
	}

	return f.memStore.DeleteFolder(ctx, user, id)
}

// newTrashService 用内存桩搭建回收站服务.
func newTrashService(t *testing.T, st *failingStore) *TrashService {
	t.Helper()

	if err := configs.InitConfig(t.TempDir()); err != nil {
		t.Fatalf("init config: %v", err)
	}

	kvs, err := kv.NewKVStore(context.Background(), kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("new kv store: %v", err)
	}

	t.Cleanup(func() { _ = kvs.Close() })

	return &TrashService{&Service{
		store:    st,
		sessions: vault.NewManager(st, kvs, nil),
	}}
}

func strPtr(s string) *string { return &s }

// TestMoveToTrashRemoteFailureKeepsSession 验证远端删行失败时
// 活跃集合与回收站均保持原样，错误原样上抛.
func TestMoveToTrashRemoteFailureKeepsSession(t *testing.T) {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	st := &failingStore{
		memStore:  &memStore{files: []model.File{file("f1", "report.pdf", base)}},
		failFiles: map[string]struct{}{"f1": {}},
	}
	svc := newTrashService(t, st)

	if _, err := svc.MoveToTrash(ctx, testUser, "f1"); err == nil {
		t.Fatal("expected the remote delete error to surface")
	}

	sess, err := svc.session(ctx, testUser)
	if err != nil {
		t.Fatalf("session: %v", err)
	}

	files := sess.Files()
	if len(files) != 1 || files[0].ID != "f1" {
		t.Fatalf("file must stay live after a failed remote delete, got %+v", files)
	}

	if trash := sess.Trash(); len(trash) != 0 {
		t.Fatalf("trash must stay empty, got %+v", trash)
	}

	// 远端恢复后重试照常成功
	delete(st.failFiles, "f1")

	resp, err := svc.MoveToTrash(ctx, testUser, "f1")
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if resp.Affected != 1 {
		t.Fatalf("retry affected = %d, want 1", resp.Affected)
	}
}

// TestMoveFolderToTrashPartialRemoteFailure 验证级联删除中途失败时
// 只有远端确认删除的条目入回收站，其余保持活跃.
func TestMoveFolderToTrashPartialRemoteFailure(t *testing.T) {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	top := folder("d1", "docs", base)
	inA := file("fa", "a.txt", base.Add(time.Minute))
	inA.FolderID = strPtr("d1")
	inB := file("fb", "b.txt", base.Add(2*time.Minute))
	inB.FolderID = strPtr("d1")

	st := &failingStore{
		memStore: &memStore{
			files:   []model.File{inA, inB},
			folders: []model.Folder{top},
		},
		failFiles: map[string]struct{}{"fb": {}},
	}
	svc := newTrashService(t, st)

	// 自底向上删除：fa 先被确认，fb 失败中止，d1 的行未动
	if _, err := svc.MoveToTrash(ctx, testUser, "d1"); err == nil {
		t.Fatal("expected the partial cascade failure to surface")
	}

	sess, err := svc.session(ctx, testUser)
	if err != nil {
		t.Fatalf("session: %v", err)
	}

	if folders := sess.Folders(); len(folders) != 1 || folders[0].ID != "d1" {
		t.Fatalf("folder must stay live, got %+v", folders)
	}

	files := sess.Files()
	if len(files) != 1 || files[0].ID != "fb" {
		t.Fatalf("only the failed file should stay live, got %+v", files)
	}

	trash := sess.Trash()
	if len(trash) != 1 || trash[0].ID() != "fa" {
		t.Fatalf("only confirmed deletions belong in trash, got %+v", trash)
	}
}

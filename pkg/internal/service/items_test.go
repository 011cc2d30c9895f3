package service

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/portafy/portafy/pkg/configs"
	"github.com/portafy/portafy/pkg/internal/model"
	"github.com/portafy/portafy/pkg/internal/storage/kv"
	"github.com/portafy/portafy/pkg/internal/types"
	"github.com/portafy/portafy/pkg/internal/vault"
)

const testUser = "alice@example.com"

// memStore 内存持久层桩，够条目操作测试使用.
type memStore struct {
	files   []model.File
	folders []model.Folder
}

func (m *memStore) ListFiles(_ context.Context, _ string) ([]model.File, error) {
	return append([]model.File(nil), m.files...), nil
}

func (m *memStore) ListFolders(_ context.Context, _ string) ([]model.Folder, error) {
	return append([]model.Folder(nil), m.folders...), nil
}

func (m *memStore) InsertFile(_ context.Context, file *model.File) error {
	m.files = append(m.files, *file)

	return nil
}

func (m *memStore) InsertFolder(_ context.Context, folder *model.Folder) error {
	m.folders = append(m.folders, *folder)

	return nil
}

func (m *memStore) UpdateFile(_ context.Context, file *model.File) error {
	for i := range m.files {
		if m.files[i].ID == file.ID {
			m.files[i] = *file
		}
	}

	return nil
}

func (m *memStore) UpdateFolder(_ context.Context, folder *model.Folder) error {
	for i := range m.folders {
		if m.folders[i].ID == folder.ID {
			m.folders[i] = *folder
		}
	}

	return nil
}

func (m *memStore) DeleteFile(_ context.Context, _, _ string) error   { return nil }
func (m *memStore) DeleteFolder(_ context.Context, _, _ string) error { return nil }
func (m *memStore) PurgeFile(_ context.Context, _, _ string) error    { return nil }
func (m *memStore) PurgeFolder(_ context.Context, _, _ string) error  { return nil }

func (m *memStore) GetProfile(_ context.Context, user string) (model.Profile, error) {
	return model.Profile{User: user}, nil
}

func (m *memStore) SaveProfile(_ context.Context, _ *model.Profile) error { return nil }

func (m *memStore) CreateShare(_ context.Context, _ *model.Share) error { return nil }

func (m *memStore) GetShare(_ context.Context, _ string) (model.Share, error) {
	return model.Share{}, fmt.Errorf("not found")
}

func (m *memStore) ListShares(_ context.Context, _ string) ([]model.Share, error) {
	return nil, nil
}

func (m *memStore) DeleteShare(_ context.Context, _, _ string) error         { return nil }
func (m *memStore) DeleteSharesForItem(_ context.Context, _, _ string) error { return nil }

func (m *memStore) FilesInFolder(_ context.Context, _, _ string) ([]model.File, error) {
	return nil, nil
}

func (m *memStore) Subfolders(_ context.Context, _, _ string) ([]model.Folder, error) {
	return nil, nil
}

func (m *memStore) UploadBlob(_ context.Context, _ string, _ io.Reader, _ int64, _ string) error {
	return nil
}

func (m *memStore) DownloadBlob(_ context.Context, _ string) (io.ReadCloser, error) {
	return nil, fmt.Errorf("no blob")
}

func (m *memStore) RemoveBlob(_ context.Context, _ string) error { return nil }

func (m *memStore) PublicURL(_ context.Context, _ string, _ time.Duration) (string, error) {
	return "", fmt.Errorf("no blob")
}

// newItemsService 用内存桩搭建条目服务.
func newItemsService(t *testing.T, st *memStore) *ItemsService {
	t.Helper()

	if err := configs.InitConfig(t.TempDir()); err != nil {
		t.Fatalf("init config: %v", err)
	}

	kvs, err := kv.NewKVStore(context.Background(), kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("new kv store: %v", err)
	}

	t.Cleanup(func() { _ = kvs.Close() })

	return &ItemsService{&Service{
		store:    st,
		sessions: vault.NewManager(st, kvs, nil),
	}}
}

func file(id, name string, created time.Time) model.File {
	return model.File{ID: id, User: testUser, Name: name, Type: "text/plain", CreatedAt: created}
}

func folder(id, name string, created time.Time) model.Folder {
	return model.Folder{ID: id, User: testUser, Name: name, CreatedAt: created}
}

func TestMoveBatchPartialFailure(t *testing.T) {
	now := time.Now()
	st := &memStore{
		files:   []model.File{file("f1", "a.txt", now), file("f2", "b.txt", now.Add(-time.Minute))},
		folders: []model.Folder{folder("d1", "docs", now.Add(-time.Hour))},
	}
	svc := newItemsService(t, st)
	ctx := context.Background()

	target := "d1"
	resp := svc.MoveBatch(ctx, testUser, &types.MoveItemsRequest{
		IDs:            []string{"f1", "missing", "f2"},
		TargetFolderID: &target,
	})

	if resp.Moved != 2 {
		t.Fatalf("moved = %d, want 2", resp.Moved)
	}

	if len(resp.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", resp.Errors)
	}

	if _, ok := resp.Errors["missing"]; !ok {
		t.Fatalf("errors = %v, want entry for %q", resp.Errors, "missing")
	}

	// 成功的移动已提交
	sess, err := svc.sessions.Get(ctx, testUser)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}

	for _, id := range []string{"f1", "f2"} {
		f, ok := sess.FileByID(id)
		if !ok {
			t.Fatalf("file %s missing from session", id)
		}

		if f.FolderID == nil || *f.FolderID != target {
			t.Fatalf("file %s folder = %v, want %s", id, f.FolderID, target)
		}
	}
}

func TestMoveRejectsCycles(t *testing.T) {
	now := time.Now()
	parent := "d1"
	child := folder("d2", "inner", now)
	child.ParentFolderID = &parent

	st := &memStore{folders: []model.Folder{folder("d1", "outer", now.Add(-time.Hour)), child}}
	svc := newItemsService(t, st)
	ctx := context.Background()

	self := "d1"
	if err := svc.Move(ctx, testUser, "d1", &self); err == nil {
		t.Fatal("moving a folder into itself should fail")
	}

	sub := "d2"
	if err := svc.Move(ctx, testUser, "d1", &sub); err == nil {
		t.Fatal("moving a folder into its own subtree should fail")
	}

	root := (*string)(nil)
	if err := svc.Move(ctx, testUser, "d2", root); err != nil {
		t.Fatalf("moving to root: %v", err)
	}
}

func TestStarAndRename(t *testing.T) {
	now := time.Now()
	st := &memStore{files: []model.File{file("f1", "a.txt", now)}}
	svc := newItemsService(t, st)
	ctx := context.Background()

	if err := svc.Star(ctx, testUser, "f1", true); err != nil {
		t.Fatalf("star: %v", err)
	}

	if err := svc.Rename(ctx, testUser, "f1", "renamed.txt"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	sess, err := svc.sessions.Get(ctx, testUser)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}

	f, ok := sess.FileByID("f1")
	if !ok {
		t.Fatal("file missing from session")
	}

	if !f.Starred || f.Name != "renamed.txt" {
		t.Fatalf("file = %+v, want starred and renamed", f)
	}

	if err := svc.Rename(ctx, testUser, "ghost", "x"); err != ErrNotFound {
		t.Fatalf("rename unknown id: err = %v, want ErrNotFound", err)
	}
}

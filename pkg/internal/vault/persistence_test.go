package vault_test

import (
	"context"
	"testing"
	"time"

	"github.com/portafy/portafy/pkg/internal/model"
	"github.com/portafy/portafy/pkg/internal/vault"
)

// TestDecodeTrash 验证回收站槽位内容的解析契约.
func TestDecodeTrash(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    int
		wantErr bool
	}{
		{name: "空数组", data: `[]`, want: 0},
		{
			name: "文件条目",
			data: `[{"item_type":"file","file":{"id":"f1","name":"a.txt"},"deleted_at":"2026-08-01T10:00:00Z"}]`,
			want: 1,
		},
		{
			name: "文件夹条目",
			data: `[{"item_type":"folder","folder":{"id":"d1","name":"docs"},"deleted_at":"2026-08-01T10:00:00Z"}]`,
			want: 1,
		},
		{name: "非 JSON", data: `not json at all`, wantErr: true},
		{name: "对象而非数组", data: `{"item_type":"file"}`, wantErr: true},
		{
			name:    "判别标签与快照不符",
			data:    `[{"item_type":"file","folder":{"id":"d1"},"deleted_at":"2026-08-01T10:00:00Z"}]`,
			wantErr: true,
		},
		{
			name:    "未知判别标签",
			data:    `[{"item_type":"widget","deleted_at":"2026-08-01T10:00:00Z"}]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := vault.DecodeTrash([]byte(tt.data))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected decode error")
				}

				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(entries) != tt.want {
				t.Errorf("want %d entries, got %d", tt.want, len(entries))
			}
		})
	}
}

// TestEncodeTrashNil 验证 nil 切片编码为空数组而非 null.
func TestEncodeTrashNil(t *testing.T) {
	data, err := vault.EncodeTrash(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("want [], got %s", data)
	}
}

// TestLoadMissingSlot 验证槽位不存在时返回空集合.
func TestLoadMissingSlot(t *testing.T) {
	ts := vault.NewTrashStore(newMemoryKV(t), "appTrash:test", true)

	entries, err := ts.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("want empty collection, got %+v", entries)
	}
}

// TestLoadCorruptSlot 验证槽位内容损坏时清空槽位并返回空集合，不向上报错.
func TestLoadCorruptSlot(t *testing.T) {
	ctx := context.Background()
	kvs := newMemoryKV(t)
	slot := "appTrash:test"

	if err := kvs.Set(ctx, slot, []byte(`{{{ definitely not json`), 0); err != nil {
		t.Fatalf("seed corrupt slot: %v", err)
	}

	ts := vault.NewTrashStore(kvs, slot, true)

	entries, err := ts.Load(ctx)
	if err != nil {
		t.Fatalf("load should not fail on corrupt content: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("want empty collection, got %+v", entries)
	}

	exists, err := kvs.Exists(ctx, slot)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Error("corrupt slot should have been cleared")
	}
}

// TestFlushStripsContent 验证落盘时剥离预览内容，内存中的条目不受影响.
func TestFlushStripsContent(t *testing.T) {
	ctx := context.Background()
	kvs := newMemoryKV(t)
	slot := "appTrash:test"

	content := "data:image/png;base64,xxxx"
	file := model.File{ID: "f1", Name: "pic.png", Content: &content}
	entries := []vault.TrashEntry{vault.NewFileEntry(file, time.Now())}

	ts := vault.NewTrashStore(kvs, slot, true)
	if err := ts.Flush(ctx, entries); err != nil {
		t.Fatalf("flush: %v", err)
	}

	if entries[0].File.Content == nil {
		t.Error("in-memory entry should keep its content")
	}

	loaded, err := ts.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("want 1 entry, got %d", len(loaded))
	}
	if loaded[0].File.Content != nil {
		t.Error("persisted entry should have content stripped")
	}
}

// TestFlushKeepsContentWhenDisabled 验证关闭剥离开关时内容原样落盘.
func TestFlushKeepsContentWhenDisabled(t *testing.T) {
	ctx := context.Background()
	kvs := newMemoryKV(t)
	slot := "appTrash:test"

	content := "inline preview"
	file := model.File{ID: "f1", Name: "a.txt", Content: &content}

	ts := vault.NewTrashStore(kvs, slot, false)
	if err := ts.Flush(ctx, []vault.TrashEntry{vault.NewFileEntry(file, time.Now())}); err != nil {
		t.Fatalf("flush: %v", err)
	}

	loaded, err := ts.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded[0].File.Content == nil || *loaded[0].File.Content != content {
		t.Errorf("content should survive round trip, got %+v", loaded[0].File.Content)
	}
}

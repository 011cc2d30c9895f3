package vault_test

import (
	"testing"
	"time"

	"github.com/portafy/portafy/pkg/internal/model"
	"github.com/portafy/portafy/pkg/internal/vault"
)

func searchFixture() ([]model.File, []model.Folder) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	photo := model.File{ID: "f1", Name: "Vacation.jpg", Type: "image/jpeg", CreatedAt: base}
	report := model.File{ID: "f2", Name: "annual-report.pdf", Type: "application/pdf", CreatedAt: base.Add(24 * time.Hour)}
	clip := model.File{ID: "f3", Name: "clip.mp4", Type: "video/mp4", CreatedAt: base.Add(48 * time.Hour)}
	song := model.File{ID: "f4", Name: "song.mp3", Type: "audio/mpeg", CreatedAt: base.Add(72 * time.Hour), FolderID: strPtr("d1")}

	docs := model.Folder{ID: "d1", Name: "Documents", CreatedAt: base}
	media := model.Folder{ID: "d2", Name: "media", CreatedAt: base.Add(24 * time.Hour), ParentFolderID: strPtr("d1")}

	return []model.File{photo, report, clip, song}, []model.Folder{docs, media}
}

// TestFilterQueryCaseInsensitive 验证名称子串匹配忽略大小写.
func TestFilterQueryCaseInsensitive(t *testing.T) {
	files, folders := searchFixture()

	got := vault.FilterFiles(files, vault.Filters{Query: "VACATION"})
	if len(got) != 1 || got[0].ID != "f1" {
		t.Errorf("query should match case-insensitively, got %+v", got)
	}

	gotFolders := vault.FilterFolders(folders, vault.Filters{Query: "docu"})
	if len(gotFolders) != 1 || gotFolders[0].ID != "d1" {
		t.Errorf("folder query mismatch: %+v", gotFolders)
	}
}

// TestFilterByCategory 验证按文件大类过滤，且大类过滤不影响文件夹.
func TestFilterByCategory(t *testing.T) {
	files, folders := searchFixture()

	tests := []struct {
		category vault.Category
		wantID   string
	}{
		{vault.CategoryImage, "f1"},
		{vault.CategoryDocument, "f2"},
		{vault.CategoryVideo, "f3"},
		{vault.CategoryAudio, "f4"},
	}

	for _, tt := range tests {
		got := vault.FilterFiles(files, vault.Filters{Category: tt.category})
		if len(got) != 1 || got[0].ID != tt.wantID {
			t.Errorf("category %s: want %s, got %+v", tt.category, tt.wantID, got)
		}
	}

	// 大类只作用于文件，文件夹照常可见
	if got := vault.FilterFolders(folders, vault.Filters{Category: vault.CategoryImage}); len(got) != len(folders) {
		t.Errorf("folders should stay visible under a file category, got %+v", got)
	}

	if got := vault.FilterFiles(files, vault.Filters{Category: vault.CategoryAll}); len(got) != len(files) {
		t.Errorf("category all should pass everything, got %d", len(got))
	}
}

// TestFilterDateRangeInclusive 验证时间区间两端均为闭区间.
func TestFilterDateRangeInclusive(t *testing.T) {
	files, _ := searchFixture()

	from := time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC) // 恰好是 f2 的创建时间
	to := time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC)   // 恰好是 f3 的创建时间

	got := vault.FilterFiles(files, vault.Filters{From: &from, To: &to})
	if len(got) != 2 {
		t.Fatalf("want f2 and f3, got %+v", got)
	}
	if got[0].ID != "f2" || got[1].ID != "f3" {
		t.Errorf("boundary items should be included: %+v", got)
	}
}

// TestFilterFolderScope 验证所属文件夹限定：nil 不限、空串限根级、id 限定目录.
func TestFilterFolderScope(t *testing.T) {
	files, folders := searchFixture()

	if got := vault.FilterFiles(files, vault.Filters{}); len(got) != 4 {
		t.Errorf("nil scope should pass all files, got %d", len(got))
	}

	root := ""
	got := vault.FilterFiles(files, vault.Filters{FolderID: &root})
	if len(got) != 3 {
		t.Errorf("root scope should exclude f4, got %+v", got)
	}

	d1 := "d1"
	got = vault.FilterFiles(files, vault.Filters{FolderID: &d1})
	if len(got) != 1 || got[0].ID != "f4" {
		t.Errorf("d1 scope should match only f4, got %+v", got)
	}

	gotFolders := vault.FilterFolders(folders, vault.Filters{FolderID: &d1})
	if len(gotFolders) != 1 || gotFolders[0].ID != "d2" {
		t.Errorf("d1 scope should match only d2, got %+v", gotFolders)
	}
}

// TestFilterStarredOnly 验证星标过滤.
func TestFilterStarredOnly(t *testing.T) {
	files, _ := searchFixture()
	files[1].Starred = true

	got := vault.FilterFiles(files, vault.Filters{StarredOnly: true})
	if len(got) != 1 || got[0].ID != "f2" {
		t.Errorf("want only starred f2, got %+v", got)
	}
}

// TestCategoryOf 验证 MIME 类型到大类的映射.
func TestCategoryOf(t *testing.T) {
	tests := []struct {
		mime string
		want vault.Category
	}{
		{"image/png", vault.CategoryImage},
		{"video/webm", vault.CategoryVideo},
		{"audio/ogg", vault.CategoryAudio},
		{"text/markdown", vault.CategoryDocument},
		{"application/pdf", vault.CategoryDocument},
		{"APPLICATION/PDF", vault.CategoryDocument},
		{"application/octet-stream", vault.CategoryAll},
		{"", vault.CategoryAll},
	}

	for _, tt := range tests {
		if got := vault.CategoryOf(tt.mime); got != tt.want {
			t.Errorf("CategoryOf(%q) = %s, want %s", tt.mime, got, tt.want)
		}
	}
}

package vault

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/portafy/portafy/pkg/internal/model"
)

// Category 按 MIME 类型划分的文件大类，用于搜索过滤.
type Category string

const (
	CategoryAll      Category = "all"
	CategoryImage    Category = "image"
	CategoryDocument Category = "document"
	CategoryVideo    Category = "video"
	CategoryAudio    Category = "audio"
)

// documentTypes 归入 document 大类的非 text/ 前缀 MIME 类型.
var documentTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         {},
	"application/vnd.ms-powerpoint":                                             {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
	"application/rtf":  {},
	"application/json": {},
}

// CategoryOf 把文件 MIME 类型映射到搜索大类.
func CategoryOf(mimeType string) Category {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))

	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return CategoryImage
	case strings.HasPrefix(mimeType, "video/"):
		return CategoryVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return CategoryAudio
	case strings.HasPrefix(mimeType, "text/"):
		return CategoryDocument
	}

	if _, ok := documentTypes[mimeType]; ok {
		return CategoryDocument
	}

	return CategoryAll
}

// Filters 搜索条件，全部可选；零值 Filters 匹配所有条目.
// 过滤是纯函数，不修改输入切片.
type Filters struct {
	// Query 名称子串，匹配时忽略大小写.
	Query string
	// Category 文件大类，空或 all 表示不过滤.
	Category Category
	// From/To 创建时间闭区间.
	From *time.Time
	To   *time.Time
	// FolderID 限定所属文件夹；nil 不限定，指向空串表示仅根级条目.
	FolderID *string
	// StarredOnly 仅返回星标条目.
	StarredOnly bool
}

// matchesItem 检查通用条件：名称、时间范围、星标.
func (f Filters) matchesItem(it model.Item) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(it.ItemName()), strings.ToLower(f.Query)) {
		return false
	}

	created := it.ItemCreatedAt()
	if f.From != nil && created.Before(*f.From) {
		return false
	}
	if f.To != nil && created.After(*f.To) {
		return false
	}

	if f.StarredOnly && !it.ItemStarred() {
		return false
	}

	return true
}

// matchesScope 检查所属文件夹限定.
func (f Filters) matchesScope(parentID *string) bool {
	if f.FolderID == nil {
		return true
	}

	if *f.FolderID == "" {
		return parentID == nil
	}

	return parentID != nil && *parentID == *f.FolderID
}

// FilterFiles 返回满足条件的文件，保持输入顺序.
func FilterFiles(files []model.File, f Filters) []model.File {
	return lo.Filter(files, func(file model.File, _ int) bool {
		if !f.matchesItem(&file) || !f.matchesScope(file.FolderID) {
			return false
		}

		if f.Category != "" && f.Category != CategoryAll && CategoryOf(file.Type) != f.Category {
			return false
		}

		return true
	})
}

// FilterFolders 返回满足条件的文件夹，保持输入顺序.
// 文件大类只作用于文件，文件夹不受 Category 影响.
func FilterFolders(folders []model.Folder, f Filters) []model.Folder {
	return lo.Filter(folders, func(folder model.Folder, _ int) bool {
		return f.matchesItem(&folder) && f.matchesScope(folder.ParentFolderID)
	})
}

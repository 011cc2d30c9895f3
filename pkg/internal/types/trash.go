package types

import (
	"time"

	"github.com/portafy/portafy/pkg/internal/model"
	"github.com/portafy/portafy/pkg/internal/vault"
)

// TrashEntryInfo 回收站条目视图.
type TrashEntryInfo struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	ItemType  model.ItemType `json:"item_type"`
	DeletedAt time.Time      `json:"deleted_at"`
	File      *FileInfo      `json:"file,omitempty"`
	Folder    *FolderInfo    `json:"folder,omitempty"`
}

// NewTrashEntryInfo 从回收站条目构建视图.
func NewTrashEntryInfo(e *vault.TrashEntry) TrashEntryInfo {
	info := TrashEntryInfo{
		ID:        e.ID(),
		Name:      e.Name(),
		ItemType:  e.ItemType,
		DeletedAt: e.DeletedAt,
	}

	switch e.ItemType {
	case model.ItemTypeFile:
		fi := NewFileInfo(e.File)
		info.File = &fi
	case model.ItemTypeFolder:
		fo := NewFolderInfo(e.Folder)
		info.Folder = &fo
	}

	return info
}

// TrashListResponse 回收站列表响应，最近删除的排最前.
type TrashListResponse struct {
	Total   int              `json:"total"`
	Entries []TrashEntryInfo `json:"entries"`
}

// TrashActionResponse 回收站动作响应.
type TrashActionResponse struct {
	Affected int    `json:"affected"`
	Message  string `json:"message,omitempty"`
}

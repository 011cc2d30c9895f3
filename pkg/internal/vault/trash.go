// Package vault 维护单个用户的集合状态（文件、文件夹、回收站）并提供
// 移入回收站、还原、彻底删除等原语，保证三个集合互斥且一致.
package vault

import (
	"time"

	"github.com/portafy/portafy/pkg/internal/model"
)

// TrashEntry 回收站条目：判别标签 + 条目快照 + 删除时间.
// File 与 Folder 恰有一个非 nil，由 ItemType 判别.
type TrashEntry struct {
	ItemType  model.ItemType `json:"item_type"`
	File      *model.File    `json:"file,omitempty"`
	Folder    *model.Folder  `json:"folder,omitempty"`
	DeletedAt time.Time      `json:"deleted_at"`
}

// ID 返回被删除条目的标识.
func (e *TrashEntry) ID() string {
	switch e.ItemType {
	case model.ItemTypeFile:
		if e.File != nil {
			return e.File.ID
		}
	case model.ItemTypeFolder:
		if e.Folder != nil {
			return e.Folder.ID
		}
	}

	return ""
}

// Name 返回被删除条目的名称.
func (e *TrashEntry) Name() string {
	switch e.ItemType {
	case model.ItemTypeFile:
		if e.File != nil {
			return e.File.Name
		}
	case model.ItemTypeFolder:
		if e.Folder != nil {
			return e.Folder.Name
		}
	}

	return ""
}

// Valid 检查判别标签与快照是否匹配.
func (e *TrashEntry) Valid() bool {
	switch e.ItemType {
	case model.ItemTypeFile:
		return e.File != nil && e.Folder == nil
	case model.ItemTypeFolder:
		return e.Folder != nil && e.File == nil
	default:
		return false
	}
}

// NewFileEntry 从文件快照构造回收站条目.
func NewFileEntry(file model.File, deletedAt time.Time) TrashEntry {
	return TrashEntry{
		ItemType:  model.ItemTypeFile,
		File:      &file,
		DeletedAt: deletedAt,
	}
}

// NewFolderEntry 从文件夹快照构造回收站条目.
func NewFolderEntry(folder model.Folder, deletedAt time.Time) TrashEntry {
	return TrashEntry{
		ItemType:  model.ItemTypeFolder,
		Folder:    &folder,
		DeletedAt: deletedAt,
	}
}

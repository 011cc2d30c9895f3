// Package types 定义应用程序中使用的各种数据类型和结构体. 主要为 Request 和 Response 结构体.
package types

import (
	"time"

	"github.com/portafy/portafy/pkg/internal/model"
)

// FileInfo 文件条目视图.
type FileInfo struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Size       int64   `json:"size"`
	SizeHuman  string  `json:"size_human,omitempty"`
	Starred    bool    `json:"starred"`
	IsUploaded bool    `json:"is_uploaded"`
	Content    *string `json:"content,omitempty"`
	FolderID   *string `json:"folder_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FolderInfo 文件夹条目视图.
type FolderInfo struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Starred        bool      `json:"starred"`
	ParentFolderID *string   `json:"parent_folder_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewFileInfo 从模型构建文件视图.
func NewFileInfo(f *model.File) FileInfo {
	return FileInfo{
		ID:         f.ID,
		Name:       f.Name,
		Type:       f.Type,
		Size:       f.Size,
		Starred:    f.Starred,
		IsUploaded: f.IsUploaded,
		Content:    f.Content,
		FolderID:   f.FolderID,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}

// NewFolderInfo 从模型构建文件夹视图.
func NewFolderInfo(f *model.Folder) FolderInfo {
	return FolderInfo{
		ID:             f.ID,
		Name:           f.Name,
		Starred:        f.Starred,
		ParentFolderID: f.ParentFolderID,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

// RenameItemRequest 重命名请求.
type RenameItemRequest struct {
	Name string `binding:"required" json:"name" rule:"min=1,max=512,item_name"`
}

// StarItemRequest 星标开关请求.
type StarItemRequest struct {
	Starred bool `json:"starred"`
}

// MoveItemRequest 移动单个条目请求；TargetFolderID 为空表示移动到根级.
type MoveItemRequest struct {
	TargetFolderID *string `json:"target_folder_id"`
}

// MoveItemsRequest 批量移动请求.
type MoveItemsRequest struct {
	IDs            []string `binding:"required" json:"ids"`
	TargetFolderID *string  `json:"target_folder_id"`
}

// MoveItemsResponse 批量移动响应，失败的条目逐个列出.
type MoveItemsResponse struct {
	Moved  int               `json:"moved"`
	Errors map[string]string `json:"errors,omitempty"`
}

// ItemActionResponse 通用条目动作响应.
type ItemActionResponse struct {
	ID      string `json:"id"`
	Message string `json:"message,omitempty"`
}

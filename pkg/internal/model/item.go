package model

import (
	"time"

	"gorm.io/gorm"
)

// ItemType 条目类型判别值.
type ItemType string

const (
	ItemTypeFile   ItemType = "file"
	ItemTypeFolder ItemType = "folder"
)

// Item 文件与文件夹的公共视图，供排序、搜索等通用逻辑使用.
type Item interface {
	ItemID() string
	ItemName() string
	ItemCreatedAt() time.Time
	ItemStarred() bool
	ItemParentID() *string
}

// File 文件模型.
type File struct {
	// ID 服务端分配的 UUID
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// 用户标识（邮箱），所有查询按用户隔离
	User string `gorm:"size:255;index:idx_file_user" json:"user"`
	Name string `gorm:"size:512;index"               json:"name"`
	// Type MIME 类型或逻辑类别标签
	Type string `gorm:"size:255;index" json:"type"`
	// Size 字节数，非负；不适用时为 0
	Size    int64 `gorm:"index" json:"size"`
	Starred bool  `gorm:"index" json:"starred"`
	// IsUploaded 为 true 时该文件有对象存储数据块支撑
	IsUploaded bool `json:"is_uploaded"`
	// StoragePath 对象存储键；IsUploaded 为 true 时非空且此后不可变，
	// 彻底删除时用它释放数据块
	StoragePath *string `gorm:"size:1024" json:"storage_path,omitempty"`
	// Content 内联预览表示（data URL 或公开 URL），仅用于预览，非权威数据
	Content *string `gorm:"type:text" json:"content,omitempty"`
	// FolderID 所属文件夹，null 表示根目录
	FolderID  *string        `gorm:"size:36;index" json:"folder_id,omitempty"`
	CreatedAt time.Time      `gorm:"index"         json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (f *File) ItemID() string           { return f.ID }
func (f *File) ItemName() string         { return f.Name }
func (f *File) ItemCreatedAt() time.Time { return f.CreatedAt }
func (f *File) ItemStarred() bool        { return f.Starred }
func (f *File) ItemParentID() *string    { return f.FolderID }

// Folder 文件夹模型.
type Folder struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	User string `gorm:"size:255;index:idx_folder_user" json:"user"`
	Name string `gorm:"size:512;index"                 json:"name"`
	Starred bool `gorm:"index" json:"starred"`
	// ParentFolderID 上级文件夹，null 表示根目录
	ParentFolderID *string        `gorm:"size:36;index" json:"parent_folder_id,omitempty"`
	CreatedAt      time.Time      `gorm:"index"         json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (f *Folder) ItemID() string           { return f.ID }
func (f *Folder) ItemName() string         { return f.Name }
func (f *Folder) ItemCreatedAt() time.Time { return f.CreatedAt }
func (f *Folder) ItemStarred() bool        { return f.Starred }
func (f *Folder) ItemParentID() *string    { return f.ParentFolderID }

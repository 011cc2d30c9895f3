package model

import (
	"time"

	"gorm.io/gorm"
)

// Profile 用户个人资料.
type Profile struct {
	// User 用户标识（邮箱），每个用户一条
	User        string `gorm:"primaryKey;size:255" json:"user"`
	DisplayName string `gorm:"size:255"            json:"display_name"`
	Bio         string `gorm:"type:text"           json:"bio"`
	// AvatarPath 头像在对象存储中的键
	AvatarPath *string `gorm:"size:1024" json:"avatar_path,omitempty"`
	// ResumePath 简历在对象存储中的键
	ResumePath *string        `gorm:"size:1024" json:"resume_path,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

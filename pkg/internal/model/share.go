package model

import (
	"time"

	"gorm.io/gorm"
)

// Share 分享链接模型：以 DB 为真源.
type Share struct {
	// ShareID ULID 令牌，按字典序即时间序
	ShareID string `gorm:"primaryKey;size:26" json:"share_id"`
	Owner   string `gorm:"size:255;index"     json:"owner"`
	// ItemID 被分享的条目
	ItemID   string   `gorm:"size:36;index" json:"item_id"`
	ItemType ItemType `gorm:"size:16"       json:"item_type"`
	// AllowDownload 是否允许下载原始文件
	AllowDownload bool           `json:"allow_download"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	ExpireAt      *time.Time     `gorm:"index" json:"expire_at,omitempty"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Expired 判断分享是否已过期.
func (s *Share) Expired(now time.Time) bool {
	return s.ExpireAt != nil && now.After(*s.ExpireAt)
}

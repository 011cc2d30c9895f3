package types

import "time"

// CreateShareRequest 创建分享请求.
type CreateShareRequest struct {
	ItemID   string `binding:"required" json:"item_id"`
	ItemType string `binding:"required" json:"item_type" rule:"oneof=file folder"`
	// ExpireInHours 有效期（小时），0 表示永不过期
	ExpireInHours int  `json:"expire_in_hours,omitempty" rule:"omitempty,min=1,max=8760"`
	AllowDownload bool `json:"allow_download,omitempty"`
}

// ShareInfo 分享视图.
type ShareInfo struct {
	ShareID       string     `json:"share_id"`
	ItemID        string     `json:"item_id"`
	ItemType      string     `json:"item_type"`
	AllowDownload bool       `json:"allow_download"`
	CreatedAt     time.Time  `json:"created_at"`
	ExpireAt      *time.Time `json:"expire_at,omitempty"`
}

// ListSharesResponse 分享列表响应.
type ListSharesResponse struct {
	Total  int         `json:"total"`
	Shares []ShareInfo `json:"shares"`
}

// ResolveShareResponse 公开访问分享的响应.
type ResolveShareResponse struct {
	Share ShareInfo `json:"share"`
	File  *FileInfo `json:"file,omitempty"`
	// DownloadURL 限时下载 URL，仅当允许下载且条目有数据块时给出
	DownloadURL string `json:"download_url,omitempty"`
}

package types

// CreateFileRequest 创建内联文件请求（无对象存储数据块，仅预览内容）.
type CreateFileRequest struct {
	Name string `binding:"required" json:"name" rule:"min=1,max=512,item_name"`
	// Type MIME 类型或逻辑类别标签，缺省 text/plain
	Type string `json:"type,omitempty"`
	// Content 内联预览内容（data URL 或纯文本）
	Content  *string `json:"content,omitempty"`
	FolderID *string `json:"folder_id,omitempty"`
}

// UploadFileResponse 上传响应.
type UploadFileResponse struct {
	File FileInfo `json:"file"`
}

// ListFilesResponse 文件列表响应.
type ListFilesResponse struct {
	Total int        `json:"total"`
	Files []FileInfo `json:"files"`
}

// DownloadFileResponse 下载响应：限时访问 URL.
type DownloadFileResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	// ExpiresInSeconds URL 有效期
	ExpiresInSeconds int `json:"expires_in_seconds"`
}

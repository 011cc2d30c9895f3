package types

// StatsResponse 用户用量统计.
type StatsResponse struct {
	TotalFiles   int   `json:"total_files"`
	TotalFolders int   `json:"total_folders"`
	TrashEntries int   `json:"trash_entries"`
	StarredItems int   `json:"starred_items"`
	UploadedBlobs int  `json:"uploaded_blobs"`
	TotalBytes   int64 `json:"total_bytes"`
	// TotalHuman 人类可读的总大小，如 "1.2 MB"
	TotalHuman string `json:"total_human"`
	// ByCategory 各文件大类的数量
	ByCategory map[string]int `json:"by_category"`
}

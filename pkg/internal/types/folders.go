package types

// CreateFolderRequest 创建文件夹请求.
type CreateFolderRequest struct {
	Name           string  `binding:"required" json:"name" rule:"min=1,max=512,item_name"`
	ParentFolderID *string `json:"parent_folder_id,omitempty"`
}

// CreateFolderResponse 创建文件夹响应.
type CreateFolderResponse struct {
	Folder FolderInfo `json:"folder"`
}

// ListFoldersResponse 文件夹列表响应.
type ListFoldersResponse struct {
	Total   int          `json:"total"`
	Folders []FolderInfo `json:"folders"`
}

// FolderContentsResponse 文件夹内容响应：直接子文件与子文件夹.
type FolderContentsResponse struct {
	Folder  FolderInfo   `json:"folder"`
	Files   []FileInfo   `json:"files"`
	Folders []FolderInfo `json:"folders"`
}

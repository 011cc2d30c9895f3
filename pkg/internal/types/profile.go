package types

// ProfileResponse 个人资料视图.
type ProfileResponse struct {
	User        string `json:"user"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
	// AvatarURL 限时访问 URL，未设置头像时为空
	AvatarURL string `json:"avatar_url,omitempty"`
	// ResumeURL 限时访问 URL，未上传简历时为空
	ResumeURL string `json:"resume_url,omitempty"`
}

// UpdateProfileRequest 更新资料请求，零值字段不变更.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty" rule:"omitempty,max=255"`
	Bio         *string `json:"bio,omitempty"          rule:"omitempty,max=4096"`
}

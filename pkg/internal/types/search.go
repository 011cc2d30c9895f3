package types

import "time"

// SearchRequest 搜索请求.时间范围为闭区间；Type 取值 all/image/document/video/audio.
type SearchRequest struct {
	Query string `form:"q"    json:"q,omitempty"`
	Type  string `form:"type" json:"type,omitempty" rule:"omitempty,oneof=all image document video audio"`
	// Start/End RFC3339 时间戳
	Start string `form:"start" json:"start,omitempty"`
	End   string `form:"end"   json:"end,omitempty"`
	// FolderID 限定所属文件夹；缺省不限，"root" 表示仅根级
	FolderID string `form:"folder_id" json:"folder_id,omitempty"`
	Starred  bool   `form:"starred"   json:"starred,omitempty"`
}

// ParseStart 解析起始时间，未提供或非法时返回 false.
func (r *SearchRequest) ParseStart() (time.Time, bool) {
	return parseRFC3339(r.Start)
}

// ParseEnd 解析结束时间.
func (r *SearchRequest) ParseEnd() (time.Time, bool) {
	return parseRFC3339(r.End)
}

func parseRFC3339(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// SearchResponse 搜索响应.
type SearchResponse struct {
	Total   int          `json:"total"`
	Files   []FileInfo   `json:"files"`
	Folders []FolderInfo `json:"folders"`
}

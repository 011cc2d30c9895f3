package service

import (
	"context"

	"github.com/portafy/portafy/pkg/internal/types"
	"github.com/portafy/portafy/pkg/internal/vault"
)

// SearchService 对会话集合的纯内存搜索.
type SearchService struct{ *Service }

func NewSearchService(c context.Context) *SearchService { return &SearchService{newService(c)} }

// Search 按名称、大类、时间范围、所属文件夹与星标过滤活跃条目.
func (s *SearchService) Search(ctx context.Context, user string, req *types.SearchRequest) (types.SearchResponse, error) {
	sess, err := s.session(ctx, user)
	if err != nil {
		return types.SearchResponse{}, err
	}

	filters := vault.Filters{
		Query:       req.Query,
		Category:    vault.Category(req.Type),
		StarredOnly: req.Starred,
	}

	if start, ok := req.ParseStart(); ok {
		filters.From = &start
	}
	if end, ok := req.ParseEnd(); ok {
		filters.To = &end
	}

	switch req.FolderID {
	case "":
	case "root":
		root := ""
		filters.FolderID = &root
	default:
		filters.FolderID = &req.FolderID
	}

	files, folders := sess.Search(filters)

	resp := types.SearchResponse{
		Files:   make([]types.FileInfo, 0, len(files)),
		Folders: make([]types.FolderInfo, 0, len(folders)),
	}

	for i := range files {
		resp.Files = append(resp.Files, fileInfoWithSize(&files[i]))
	}
	for i := range folders {
		resp.Folders = append(resp.Folders, types.NewFolderInfo(&folders[i]))
	}

	resp.Total = len(resp.Files) + len(resp.Folders)

	return resp, nil
}

package service

import (
	"context"

	"github.com/dustin/go-humanize"

	"github.com/portafy/portafy/pkg/internal/model"
	"github.com/portafy/portafy/pkg/internal/types"
	"github.com/portafy/portafy/pkg/internal/vault"
)

// StatsService 用量统计.
type StatsService struct{ *Service }

func NewStatsService(c context.Context) *StatsService { return &StatsService{newService(c)} }

// Overview 汇总用户的条目数量、回收站规模与存储用量.
func (s *StatsService) Overview(ctx context.Context, user string) (types.StatsResponse, error) {
	sess, err := s.session(ctx, user)
	if err != nil {
		return types.StatsResponse{}, err
	}

	files := sess.Files()
	folders := sess.Folders()
	trash := sess.Trash()

	resp := types.StatsResponse{
		TotalFiles:   len(files),
		TotalFolders: len(folders),
		TrashEntries: len(trash),
		ByCategory:   make(map[string]int),
	}

	for i := range files {
		f := &files[i]

		resp.TotalBytes += f.Size
		resp.ByCategory[string(vault.CategoryOf(f.Type))]++

		if f.Starred {
			resp.StarredItems++
		}
		if f.IsUploaded {
			resp.UploadedBlobs++
		}
	}

	for i := range folders {
		if folders[i].Starred {
			resp.StarredItems++
		}
	}

	// 回收站里的数据块仍占用存储
	for i := range trash {
		if trash[i].ItemType == model.ItemTypeFile && trash[i].File != nil {
			resp.TotalBytes += trash[i].File.Size
		}
	}

	resp.TotalHuman = humanize.IBytes(uint64(resp.TotalBytes))

	return resp, nil
}

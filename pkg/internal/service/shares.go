package service

import (
	"context"
	crand "crypto/rand"
	"time"

	"github.com/oklog/ulid"

	"github.com/portafy/portafy/pkg/internal/model"
	"github.com/portafy/portafy/pkg/internal/types"
)

// 全局单例的 ULID 熵源，使用单调递增策略，确保同一毫秒内生成的 ULID 具有排序稳定性。
var ulidEntropy = ulid.Monotonic(crand.Reader, 0)

// SharesService 分享链接能力：创建、列表、撤销、公开访问.
type SharesService struct{ *Service }

func NewSharesService(c context.Context) *SharesService { return &SharesService{newService(c)} }

// Create 为活跃条目创建分享.
func (s *SharesService) Create(ctx context.Context, user string, req *types.CreateShareRequest) (types.ShareInfo, error) {
	sess, err := s.session(ctx, user)
	if err != nil {
		return types.ShareInfo{}, err
	}

	itemType := model.ItemType(req.ItemType)

	switch itemType {
	case model.ItemTypeFile:
		if _, ok := sess.FileByID(req.ItemID); !ok {
			return types.ShareInfo{}, ErrNotFound
		}
	case model.ItemTypeFolder:
		if _, ok := sess.FolderByID(req.ItemID); !ok {
			return types.ShareInfo{}, ErrNotFound
		}
	}

	share := model.Share{
		ShareID:       ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String(),
		Owner:         user,
		ItemID:        req.ItemID,
		ItemType:      itemType,
		AllowDownload: req.AllowDownload,
	}

	if req.ExpireInHours > 0 {
		expireAt := time.Now().Add(time.Duration(req.ExpireInHours) * time.Hour)
		share.ExpireAt = &expireAt
	}

	if err := s.store.CreateShare(ctx, &share); err != nil {
		return types.ShareInfo{}, err
	}

	return shareInfo(&share), nil
}

// List 列出用户的全部分享.
func (s *SharesService) List(ctx context.Context, user string) (types.ListSharesResponse, error) {
	shares, err := s.store.ListShares(ctx, user)
	if err != nil {
		return types.ListSharesResponse{}, err
	}

	infos := make([]types.ShareInfo, 0, len(shares))
	for i := range shares {
		infos = append(infos, shareInfo(&shares[i]))
	}

	return types.ListSharesResponse{Total: len(infos), Shares: infos}, nil
}

// Revoke 撤销分享.
func (s *SharesService) Revoke(ctx context.Context, user, shareID string) error {
	return s.store.DeleteShare(ctx, user, shareID)
}

// Resolve 公开访问分享：按令牌解析条目并按需给出下载 URL.
// 无需登录，过期分享返回 ErrShareExpired.
func (s *SharesService) Resolve(ctx context.Context, shareID string) (types.ResolveShareResponse, error) {
	share, err := s.store.GetShare(ctx, shareID)
	if err != nil {
		return types.ResolveShareResponse{}, ErrNotFound
	}

	if share.Expired(time.Now()) {
		return types.ResolveShareResponse{}, ErrShareExpired
	}

	resp := types.ResolveShareResponse{Share: shareInfo(&share)}

	if share.ItemType != model.ItemTypeFile {
		return resp, nil
	}

	// 通过所有者会话取条目快照，分享指向的条目必须仍然活跃
	sess, err := s.session(ctx, share.Owner)
	if err != nil {
		return types.ResolveShareResponse{}, err
	}

	file, ok := sess.FileByID(share.ItemID)
	if !ok {
		return types.ResolveShareResponse{}, ErrNotFound
	}

	info := fileInfoWithSize(&file)
	resp.File = &info

	if share.AllowDownload && file.IsUploaded && file.StoragePath != nil {
		if url, err := s.store.PublicURL(ctx, *file.StoragePath, DefaultPresignedOpTimeout); err == nil {
			resp.DownloadURL = url
		}
	}

	return resp, nil
}

func shareInfo(s *model.Share) types.ShareInfo {
	return types.ShareInfo{
		ShareID:       s.ShareID,
		ItemID:        s.ItemID,
		ItemType:      string(s.ItemType),
		AllowDownload: s.AllowDownload,
		CreatedAt:     s.CreatedAt,
		ExpireAt:      s.ExpireAt,
	}
}

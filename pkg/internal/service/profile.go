package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"

	"github.com/portafy/portafy/pkg/configs"
	"github.com/portafy/portafy/pkg/internal/store"
	"github.com/portafy/portafy/pkg/internal/types"
	"github.com/portafy/portafy/pkg/queue"
)

// ProfileService 个人资料能力：资料读写、头像与简历上传.
type ProfileService struct{ *Service }

func NewProfileService(c context.Context) *ProfileService { return &ProfileService{newService(c)} }

// Get 读取资料，头像与简历以限时 URL 给出.
func (s *ProfileService) Get(ctx context.Context, user string) (types.ProfileResponse, error) {
	profile, err := s.store.GetProfile(ctx, user)
	if err != nil {
		return types.ProfileResponse{}, err
	}

	resp := types.ProfileResponse{
		User:        profile.User,
		DisplayName: profile.DisplayName,
		Bio:         profile.Bio,
	}

	if profile.AvatarPath != nil {
		if url, err := s.store.PublicURL(ctx, *profile.AvatarPath, DefaultPresignedOpTimeout); err == nil {
			resp.AvatarURL = url
		}
	}

	if profile.ResumePath != nil {
		if url, err := s.store.PublicURL(ctx, *profile.ResumePath, DefaultPresignedOpTimeout); err == nil {
			resp.ResumeURL = url
		}
	}

	return resp, nil
}

// Update 更新展示名与简介，nil 字段不变更.
func (s *ProfileService) Update(ctx context.Context, user string, req *types.UpdateProfileRequest) (types.ProfileResponse, error) {
	profile, err := s.store.GetProfile(ctx, user)
	if err != nil {
		return types.ProfileResponse{}, err
	}

	var fields []string

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
		fields = append(fields, "display_name")
	}

	if req.Bio != nil {
		profile.Bio = *req.Bio
		fields = append(fields, "bio")
	}

	if len(fields) > 0 {
		if err := s.store.SaveProfile(ctx, &profile); err != nil {
			return types.ProfileResponse{}, err
		}

		s.publishUpdated(user, fields)
	}

	return s.Get(ctx, user)
}

// UploadAvatar 上传头像，仅接受图片.
func (s *ProfileService) UploadAvatar(ctx context.Context, user string, r io.Reader, size int64) (types.ProfileResponse, error) {
	return s.uploadAsset(ctx, user, r, size, "avatar")
}

// UploadResume 上传简历.
func (s *ProfileService) UploadResume(ctx context.Context, user string, r io.Reader, size int64) (types.ProfileResponse, error) {
	return s.uploadAsset(ctx, user, r, size, "resume")
}

func (s *ProfileService) uploadAsset(ctx context.Context, user string, r io.Reader, size int64, kind string) (types.ProfileResponse, error) {
	if limit := configs.GetConfig().Vault.MaxUploadBytes(); limit > 0 && size > limit {
		return types.ProfileResponse{}, fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, size, limit)
	}

	header := make([]byte, mimeSniffSize)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return types.ProfileResponse{}, fmt.Errorf("read upload header: %w", err)
	}
	header = header[:n]

	mtype := mimetype.Detect(header)
	if kind == "avatar" && !isImage(mtype.String()) {
		return types.ProfileResponse{}, fmt.Errorf("avatar must be an image, got %s", mtype.String())
	}

	key := store.BuildStorageKey(user, kind, kind+mtype.Extension())
	body := io.MultiReader(bytes.NewReader(header), r)

	if err := s.store.UploadBlob(ctx, key, body, size, mtype.String()); err != nil {
		return types.ProfileResponse{}, err
	}

	profile, err := s.store.GetProfile(ctx, user)
	if err != nil {
		return types.ProfileResponse{}, err
	}

	// 旧资产的键与新键不同（扩展名变化）时回收旧数据块
	var old *string

	switch kind {
	case "avatar":
		old = profile.AvatarPath
		profile.AvatarPath = &key
	case "resume":
		old = profile.ResumePath
		profile.ResumePath = &key
	}

	if err := s.store.SaveProfile(ctx, &profile); err != nil {
		return types.ProfileResponse{}, err
	}

	if old != nil && *old != key {
		if err := s.store.RemoveBlob(ctx, *old); err != nil {
			log.Warn().Err(err).Str("user", user).Str("key", *old).Msg("回收旧资料资产失败")
		}
	}

	s.publishUpdated(user, []string{kind})

	return s.Get(ctx, user)
}

func (s *ProfileService) publishUpdated(user string, fields []string) {
	if !s.eventsOn(profileEvents) {
		return
	}

	logPublishErr(queue.PublishProfileUpdated(s.mqc.Publisher(), queue.ProfileUpdatedPayload{
		User:   user,
		Fields: fields,
	}), queue.TopicProfileUpdated)
}

// isImage 判断 MIME 类型是否为图片.
func isImage(mime string) bool {
	return strings.HasPrefix(mime, "image/")
}

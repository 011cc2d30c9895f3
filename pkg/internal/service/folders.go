package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/portafy/portafy/pkg/internal/model"
	"github.com/portafy/portafy/pkg/internal/types"
	"github.com/portafy/portafy/pkg/internal/vault"
	"github.com/portafy/portafy/pkg/queue"
)

// FoldersService 文件夹相关能力：创建、列表、内容浏览.
type FoldersService struct{ *Service }

func NewFoldersService(c context.Context) *FoldersService { return &FoldersService{newService(c)} }

// List 列出用户全部活跃文件夹，按创建时间降序.
func (s *FoldersService) List(ctx context.Context, user string) (types.ListFoldersResponse, error) {
	sess, err := s.session(ctx, user)
	if err != nil {
		return types.ListFoldersResponse{}, err
	}

	folders := sess.Folders()
	infos := make([]types.FolderInfo, 0, len(folders))
	for i := range folders {
		infos = append(infos, types.NewFolderInfo(&folders[i]))
	}

	return types.ListFoldersResponse{Total: len(infos), Folders: infos}, nil
}

// Create 创建文件夹.
func (s *FoldersService) Create(ctx context.Context, user string, req *types.CreateFolderRequest) (types.CreateFolderResponse, error) {
	sess, err := s.session(ctx, user)
	if err != nil {
		return types.CreateFolderResponse{}, err
	}

	// 上级文件夹必须是活跃的
	if req.ParentFolderID != nil {
		if _, ok := sess.FolderByID(*req.ParentFolderID); !ok {
			return types.CreateFolderResponse{}, ErrNotFound
		}
	}

	folder := model.Folder{
		ID:             uuid.NewString(),
		User:           user,
		Name:           req.Name,
		ParentFolderID: req.ParentFolderID,
	}

	if err := s.store.InsertFolder(ctx, &folder); err != nil {
		return types.CreateFolderResponse{}, err
	}

	sess.AddFolder(folder)

	if s.eventsOn(itemEvents) {
		logPublishErr(queue.PublishFolderCreated(s.mqc.Publisher(), queue.FolderCreatedPayload{
			Item: folderRef(user, &folder),
		}), queue.TopicFolderCreated)
	}

	return types.CreateFolderResponse{Folder: types.NewFolderInfo(&folder)}, nil
}

// Contents 返回文件夹的直接子文件与子文件夹.
func (s *FoldersService) Contents(ctx context.Context, user, id string) (types.FolderContentsResponse, error) {
	sess, err := s.session(ctx, user)
	if err != nil {
		return types.FolderContentsResponse{}, err
	}

	folder, ok := sess.FolderByID(id)
	if !ok {
		return types.FolderContentsResponse{}, ErrNotFound
	}

	files, subfolders := sess.Search(vault.Filters{FolderID: &id})

	resp := types.FolderContentsResponse{
		Folder:  types.NewFolderInfo(&folder),
		Files:   make([]types.FileInfo, 0, len(files)),
		Folders: make([]types.FolderInfo, 0, len(subfolders)),
	}

	for i := range files {
		resp.Files = append(resp.Files, fileInfoWithSize(&files[i]))
	}
	for i := range subfolders {
		resp.Folders = append(resp.Folders, types.NewFolderInfo(&subfolders[i]))
	}

	return resp, nil
}

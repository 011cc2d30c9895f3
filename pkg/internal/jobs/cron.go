// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	minio "github.com/minio/minio-go/v7"
	"golang.org/x/sync/errgroup"

	"github.com/portafy/portafy/pkg/configs"
	ctxPkg "github.com/portafy/portafy/pkg/context"
	"github.com/portafy/portafy/pkg/internal/model"
	"github.com/portafy/portafy/pkg/internal/storage"
	"github.com/portafy/portafy/pkg/internal/vault"
	"github.com/portafy/portafy/pkg/log"
	"github.com/portafy/portafy/pkg/scheduler"
)

// orphanGracePeriod 对象晚于该时长才允许被当作孤儿清理，避免删掉尚未写入 DB 的上传.
const orphanGracePeriod = 24 * time.Hour

// RegisterCronJobs 配置业务定时任务：
//   - 按配置间隔清扫空闲用户会话（落盘回收站后移出内存）
//   - 每天 04:30 清理对象存储中不再被任何记录引用的孤儿数据块
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager, sessions *vault.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)
	cfg := configs.GetConfig()

	if sessions != nil {
		_ = sched.AddInterval(JobSessionSweep, cfg.Vault.GetSessionSweepInterval(), func(ctx context.Context) {
			runSessionSweep(ctx, sessions)
		}, baseCtx)
	}

	_ = sched.AddCron(JobOrphanBlobSweep, CronOrphanBlobSweep, func(ctx context.Context) {
		runOrphanBlobSweep(ctx, mgr)
	}, baseCtx)

	return nil
}

// runSessionSweep 回收空闲超时的用户会话.
func runSessionSweep(_ context.Context, sessions *vault.Manager) {
	l := log.Logger().With().Str("job", JobSessionSweep).Logger()

	if n := sessions.EvictIdle(); n > 0 {
		l.Info().Int("evicted", n).Msg("idle sessions evicted")
	}
}

// runOrphanBlobSweep 清理对象存储中不再被任何 DB 记录引用的数据块。
// 文件记录（含软删除的回收站条目）与个人资料的头像/简历键均视为有效引用；
// 对象需超过宽限期才会被删除。
func runOrphanBlobSweep(ctx context.Context, mgr *storage.Manager) {
	l := log.Logger().With().Str("job", JobOrphanBlobSweep).Logger()

	referenced, err := collectReferencedKeys(ctx, mgr)
	if err != nil {
		l.Error().Err(err).Msg("collect referenced keys failed")
		return
	}

	s3c := mgr.GetS3Client()
	if s3c == nil {
		l.Error().Msg("s3 not initialized")
		return
	}

	bucket := s3c.GetConfig().BucketName
	cutoff := time.Now().Add(-orphanGracePeriod)

	var removed, failed int

	for obj := range s3c.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			l.Error().Err(obj.Err).Msg("list objects failed")
			return
		}

		if strings.HasSuffix(obj.Key, "/") {
			continue
		}

		if _, ok := referenced[obj.Key]; ok {
			continue
		}

		if obj.LastModified.After(cutoff) {
			continue
		}

		if err := s3c.RemoveObject(ctx, bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			failed++

			l.Error().Err(err).Str("key", obj.Key).Msg("remove orphan blob failed")

			continue
		}

		removed++
	}

	if removed > 0 || failed > 0 {
		l.Info().Int("removed", removed).Int("failed", failed).Msg("orphan blob sweep done")
	}
}

// collectReferencedKeys 并发收集文件与个人资料引用的全部对象键.
func collectReferencedKeys(ctx context.Context, mgr *storage.Manager) (map[string]struct{}, error) {
	dbc := mgr.GetDBClient()
	if dbc == nil || dbc.GetDB() == nil {
		return nil, fmt.Errorf("db not initialized")
	}

	dbx := dbc.GetDB().WithContext(ctx)

	var (
		fileKeys   []string
		avatarKeys []string
		resumeKeys []string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// Unscoped: 回收站中的软删除文件仍持有数据块
		return dbx.WithContext(gctx).Unscoped().Model(&model.File{}).
			Where("storage_path IS NOT NULL").
			Pluck("storage_path", &fileKeys).Error
	})

	g.Go(func() error {
		return dbx.WithContext(gctx).Model(&model.Profile{}).
			Where("avatar_path IS NOT NULL").
			Pluck("avatar_path", &avatarKeys).Error
	})

	g.Go(func() error {
		return dbx.WithContext(gctx).Model(&model.Profile{}).
			Where("resume_path IS NOT NULL").
			Pluck("resume_path", &resumeKeys).Error
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	referenced := make(map[string]struct{}, len(fileKeys)+len(avatarKeys)+len(resumeKeys))
	for _, keys := range [][]string{fileKeys, avatarKeys, resumeKeys} {
		for _, k := range keys {
			if k != "" {
				referenced[k] = struct{}{}
			}
		}
	}

	return referenced, nil
}

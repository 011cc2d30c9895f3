package jobs

// 任务名称常量，便于统一管理与引用.
const (
	JobSessionSweep    = "session.sweep"
	JobOrphanBlobSweep = "blob.orphan_sweep"
)

// Cron 表达式常量.
const (
	CronOrphanBlobSweep = "30 4 * * *"
)

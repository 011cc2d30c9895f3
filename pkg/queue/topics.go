// Package queue 定义消息主题常量与通配模式，供发布/订阅使用.
package queue

// 主题命名规范：pf.<域>.<动作>，尽量稳定且向后兼容.
// 域：trash(回收站)、file(文件)、folder(文件夹)、item(通用条目)、profile(个人资料)、session(会话)
// 动作：created/renamed/moved/starred/trashed/restored/purged 等

const (
	// 回收站领域.
	TopicTrashMoved    = "pf.trash.moved"    // 条目移入回收站
	TopicTrashRestored = "pf.trash.restored" // 条目从回收站还原
	TopicTrashPurged   = "pf.trash.purged"   // 条目被彻底删除

	// 文件领域.
	TopicFileCreated  = "pf.file.created"  // 文件创建（上传完成并写入数据库）
	TopicFileAccessed = "pf.file.accessed" // 文件被下载或预览

	// 文件夹领域.
	TopicFolderCreated = "pf.folder.created" // 文件夹创建

	// 通用条目领域（文件与文件夹共用）.
	TopicItemStarred = "pf.item.starred" // 条目星标状态变更
	TopicItemRenamed = "pf.item.renamed" // 条目重命名
	TopicItemMoved   = "pf.item.moved"   // 条目移动到其他文件夹

	// 个人资料领域.
	TopicProfileUpdated = "pf.profile.updated" // 个人资料更新（含头像、简历）

	// 会话领域.
	TopicSessionStarted = "pf.session.started" // 用户会话建立
	TopicSessionEnded   = "pf.session.ended"   // 用户会话结束（登出或空闲回收）
)

// 主题分组，用于批量操作或权限控制.
var (
	// 回收站相关主题集合.
	TrashTopics = []string{
		TopicTrashMoved, TopicTrashRestored, TopicTrashPurged,
	}

	// 条目相关主题集合.
	ItemTopics = []string{
		TopicFileCreated, TopicFileAccessed, TopicFolderCreated,
		TopicItemStarred, TopicItemRenamed, TopicItemMoved,
	}

	// 会话相关主题集合.
	SessionTopics = []string{
		TopicSessionStarted, TopicSessionEnded,
	}
)

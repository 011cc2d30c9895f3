package queue

import "github.com/ThreeDotsLabs/watermill/message"

// -------------------------- 基于业务封装 events --------------------------

// PublishTrashMoved 发布 pf.trash.moved 事件。
// 条目移入回收站后通知下游流程（如审计、配额统计）。
// 可通过可选项 opts 注入 TraceID、Producer 等头部信息。
func PublishTrashMoved(pub message.Publisher, payload TrashMovedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicTrashMoved, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicTrashMoved, msg)
}

// ParseTrashMoved 将 Watermill 消息解析为强类型 Envelope（TrashMovedPayload）。
func ParseTrashMoved(msg *message.Message) (Message[TrashMovedPayload], error) {
	return ParseWatermillMessage[TrashMovedPayload](msg)
}

// PublishTrashRestored 发布 pf.trash.restored 事件。
func PublishTrashRestored(pub message.Publisher, payload TrashRestoredPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicTrashRestored, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicTrashRestored, msg)
}

// ParseTrashRestored 将 Watermill 消息解析为强类型 Envelope（TrashRestoredPayload）。
func ParseTrashRestored(msg *message.Message) (Message[TrashRestoredPayload], error) {
	return ParseWatermillMessage[TrashRestoredPayload](msg)
}

// PublishTrashPurged 发布 pf.trash.purged 事件。
func PublishTrashPurged(pub message.Publisher, payload TrashPurgedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicTrashPurged, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicTrashPurged, msg)
}

// PublishFileCreated 发布 pf.file.created 事件。
func PublishFileCreated(pub message.Publisher, payload FileCreatedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicFileCreated, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicFileCreated, msg)
}

// PublishFileAccessed 发布 pf.file.accessed 事件。
func PublishFileAccessed(pub message.Publisher, payload FileAccessedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicFileAccessed, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicFileAccessed, msg)
}

// PublishFolderCreated 发布 pf.folder.created 事件。
func PublishFolderCreated(pub message.Publisher, payload FolderCreatedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicFolderCreated, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicFolderCreated, msg)
}

// PublishItemStarred 发布 pf.item.starred 事件。
func PublishItemStarred(pub message.Publisher, payload ItemStarredPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicItemStarred, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicItemStarred, msg)
}

// PublishItemRenamed 发布 pf.item.renamed 事件。
func PublishItemRenamed(pub message.Publisher, payload ItemRenamedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicItemRenamed, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicItemRenamed, msg)
}

// PublishItemMoved 发布 pf.item.moved 事件。
func PublishItemMoved(pub message.Publisher, payload ItemMovedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicItemMoved, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicItemMoved, msg)
}

// PublishProfileUpdated 发布 pf.profile.updated 事件。
func PublishProfileUpdated(pub message.Publisher, payload ProfileUpdatedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicProfileUpdated, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicProfileUpdated, msg)
}

// PublishSessionStarted 发布 pf.session.started 事件。
func PublishSessionStarted(pub message.Publisher, payload SessionStartedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicSessionStarted, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicSessionStarted, msg)
}

// PublishSessionEnded 发布 pf.session.ended 事件。
func PublishSessionEnded(pub message.Publisher, payload SessionEndedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicSessionEnded, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicSessionEnded, msg)
}

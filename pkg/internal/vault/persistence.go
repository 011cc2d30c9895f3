package vault

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/portafy/portafy/pkg/internal/model"
	"github.com/portafy/portafy/pkg/internal/storage/kv"
)

// TrashStore 把回收站快照持久化到键值存储的单个槽位.
// 槽位内容是 TrashEntry 的 JSON 数组，读路径容忍槽位缺失与内容损坏.
type TrashStore struct {
	store kv.KVStore
	slot  string
	strip bool
}

// NewTrashStore 创建回收站持久化适配器.
// strip 为 true 时写入前清空文件预览内容，避免把大文本塞进 KV.
func NewTrashStore(store kv.KVStore, slot string, strip bool) *TrashStore {
	return &TrashStore{
		store: store,
		slot:  slot,
		strip: strip,
	}
}

// Slot 返回持久化槽位名.
func (s *TrashStore) Slot() string {
	return s.slot
}

// DecodeTrash 解析回收站槽位内容.
// 输入是 TrashEntry 的 JSON 数组；判别标签与快照不匹配的条目视为损坏.
func DecodeTrash(data []byte) ([]TrashEntry, error) {
	var entries []TrashEntry
	if err := sonic.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode trash: %w", err)
	}

	for i := range entries {
		if !entries[i].Valid() {
			return nil, fmt.Errorf("decode trash: entry %d has mismatched item_type %q", i, entries[i].ItemType)
		}
	}

	return entries, nil
}

// EncodeTrash 序列化回收站条目.
func EncodeTrash(entries []TrashEntry) ([]byte, error) {
	if entries == nil {
		entries = []TrashEntry{}
	}

	data, err := sonic.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode trash: %w", err)
	}

	return data, nil
}

// Load 读取回收站快照.
// 槽位不存在时返回空集合；内容损坏时清空槽位、返回空集合并记录日志，不向上报错.
func (s *TrashStore) Load(ctx context.Context) ([]TrashEntry, error) {
	exists, err := s.store.Exists(ctx, s.slot)
	if err != nil {
		return nil, fmt.Errorf("check trash slot %s: %w", s.slot, err)
	}
	if !exists {
		return []TrashEntry{}, nil
	}

	data, err := s.store.Get(ctx, s.slot)
	if err != nil {
		return nil, fmt.Errorf("read trash slot %s: %w", s.slot, err)
	}

	entries, err := DecodeTrash(data)
	if err != nil {
		log.Warn().Err(err).Str("slot", s.slot).Msg("回收站槽位内容损坏，已清空")

		if delErr := s.store.Delete(ctx, s.slot); delErr != nil {
			log.Error().Err(delErr).Str("slot", s.slot).Msg("清空损坏的回收站槽位失败")
		}

		return []TrashEntry{}, nil
	}

	return entries, nil
}

// Flush 覆盖写回收站快照.
func (s *TrashStore) Flush(ctx context.Context, entries []TrashEntry) error {
	if s.strip {
		entries = stripContent(entries)
	}

	data, err := EncodeTrash(entries)
	if err != nil {
		return err
	}

	if err := s.store.Set(ctx, s.slot, data, 0); err != nil {
		return fmt.Errorf("write trash slot %s: %w", s.slot, err)
	}

	return nil
}

// stripContent 返回清空了文件预览内容的条目副本，原切片不受影响.
func stripContent(entries []TrashEntry) []TrashEntry {
	out := make([]TrashEntry, len(entries))
	copy(out, entries)

	for i := range out {
		if out[i].ItemType != model.ItemTypeFile || out[i].File == nil || out[i].File.Content == nil {
			continue
		}

		file := *out[i].File
		file.Content = nil
		out[i].File = &file
	}

	return out
}

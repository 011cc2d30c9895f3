package vault

import (
	"sort"

	"github.com/samber/lo"

	"github.com/portafy/portafy/pkg/internal/model"
)

// itemPtr 约束：*T 实现 model.Item.
type itemPtr[T any] interface {
	*T
	model.Item
}

// sortByCreatedAtDesc 按创建时间降序稳定排序，创建时间相同的条目保持原相对顺序.
func sortByCreatedAtDesc[T any, P itemPtr[T]](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return P(&items[i]).ItemCreatedAt().After(P(&items[j]).ItemCreatedAt())
	})
}

// removeByID 按 id 剔除条目，返回新切片与是否命中.
func removeByID[T any, P itemPtr[T]](items []T, id string) ([]T, bool) {
	next := lo.Reject(items, func(it T, _ int) bool {
		return P(&it).ItemID() == id
	})

	return next, len(next) != len(items)
}

// findByID 按 id 查找条目.
func findByID[T any, P itemPtr[T]](items []T, id string) (T, bool) {
	return lo.Find(items, func(it T) bool {
		return P(&it).ItemID() == id
	})
}

// replaceByID 用新快照替换同 id 条目，返回是否命中.
func replaceByID[T any, P itemPtr[T]](items []T, item T) bool {
	id := P(&item).ItemID()
	for i := range items {
		if P(&items[i]).ItemID() == id {
			items[i] = item

			return true
		}
	}

	return false
}

// insertSorted 插入条目并按创建时间降序重排.
func insertSorted[T any, P itemPtr[T]](items []T, item T) []T {
	next := append(items, item)
	sortByCreatedAtDesc[T, P](next)

	return next
}

// trashIndexOf 在回收站切片中查找条目下标.
func trashIndexOf(entries []TrashEntry, id string) (int, bool) {
	for i := range entries {
		if entries[i].ID() == id {
			return i, true
		}
	}

	return -1, false
}

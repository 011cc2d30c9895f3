package cache_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/portafy/portafy/pkg/cache"
)

// testEntry 测试用的结构体.
type testEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// mockKVStore 模拟KV存储实现.
type mockKVStore struct {
	data map[string][]byte
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{
		data: make(map[string][]byte),
	}
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if value, exists := m.data[key]; exists {
		return value, nil
	}

	return nil, fmt.Errorf("key not found")
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mockKVStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockKVStore) Exists(ctx context.Context, key string) (bool, error) {
	_, exists := m.data[key]
	return exists, nil
}

func (m *mockKVStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}

	return keys, nil
}

func (m *mockKVStore) Close() error {
	return nil
}

// TestNewCache 测试 NewCache 函数.
func TestNewCache(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)

	if c == nil {
		t.Fatal("NewCache returned nil")
	}
}

// TestCache_GetSet 测试 Get/Set 方法.
func TestCache_GetSet(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	// 获取不存在的键
	_, err := cache.Get[testEntry](ctx, c, "nonexistent")
	if err == nil {
		t.Error("Expected error for nonexistent key")
	}

	entry := testEntry{ID: "f-1", Name: "report.pdf", Size: 2048}

	err = cache.Set(ctx, c, "file:f-1", entry, 0)
	if err != nil {
		t.Fatalf("Failed to set cache: %v", err)
	}

	retrieved, err := cache.Get[testEntry](ctx, c, "file:f-1")
	if err != nil {
		t.Fatalf("Failed to get cache: %v", err)
	}

	if retrieved.ID != entry.ID || retrieved.Name != entry.Name || retrieved.Size != entry.Size {
		t.Errorf("Retrieved entry %+v does not match original %+v", retrieved, entry)
	}
}

// TestCache_Delete 测试 Delete 方法.
func TestCache_Delete(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	entry := testEntry{ID: "f-2", Name: "notes.txt", Size: 128}

	if err := cache.Set(ctx, c, "file:f-2", entry, 0); err != nil {
		t.Fatalf("Failed to set cache: %v", err)
	}

	exists, err := c.Exists(ctx, "file:f-2")
	if err != nil {
		t.Fatalf("Failed to check existence: %v", err)
	}

	if !exists {
		t.Error("Key should exist before deletion")
	}

	if err := c.Delete(ctx, "file:f-2"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}

	exists, err = c.Exists(ctx, "file:f-2")
	if err != nil {
		t.Fatalf("Failed to check existence: %v", err)
	}

	if exists {
		t.Error("Key should not exist after deletion")
	}
}

// TestCache_GetOrSet 测试 GetOrSet 方法.
func TestCache_GetOrSet(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	calls := 0
	getter := func() (testEntry, error) {
		calls++
		return testEntry{ID: "f-3", Name: "photo.png", Size: 4096}, nil
	}

	// 首次调用应触发 getter
	entry, err := cache.GetOrSet(ctx, c, "file:f-3", getter, 0)
	if err != nil {
		t.Fatalf("GetOrSet failed: %v", err)
	}

	if entry.Name != "photo.png" {
		t.Errorf("Unexpected entry: %+v", entry)
	}

	if calls != 1 {
		t.Errorf("Expected 1 getter call, got %d", calls)
	}

	// 第二次调用应命中缓存
	_, err = cache.GetOrSet(ctx, c, "file:f-3", getter, 0)
	if err != nil {
		t.Fatalf("GetOrSet failed: %v", err)
	}

	if calls != 1 {
		t.Errorf("Expected getter not to be called again, got %d calls", calls)
	}

	// getter 出错时应传播错误
	_, err = cache.GetOrSet(ctx, c, "file:missing", func() (testEntry, error) {
		return testEntry{}, errors.New("fetch failed")
	}, 0)
	if err == nil {
		t.Error("Expected error from getter, got nil")
	}
}

// TestCache_Clear 测试 Clear 方法.
func TestCache_Clear(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	for i := range 3 {
		key := fmt.Sprintf("file:%d", i)
		if err := cache.Set(ctx, c, key, testEntry{ID: key}, 0); err != nil {
			t.Fatalf("Failed to set cache: %v", err)
		}
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if len(mockStore.data) != 0 {
		t.Errorf("Expected 0 items after clear, got %d", len(mockStore.data))
	}
}

// TestCache_GenericTypes 测试缓存对不同数据类型的支持.
func TestCache_GenericTypes(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	// 字符串类型
	if err := cache.Set(ctx, c, "string:key", "hello world", 0); err != nil {
		t.Fatalf("Failed to set string: %v", err)
	}

	str, err := cache.Get[string](ctx, c, "string:key")
	if err != nil {
		t.Fatalf("Failed to get string: %v", err)
	}

	if str != "hello world" {
		t.Errorf("Expected 'hello world', got '%s'", str)
	}

	// 整数类型
	if err := cache.Set(ctx, c, "int:key", 42, 0); err != nil {
		t.Fatalf("Failed to set int: %v", err)
	}

	num, err := cache.Get[int](ctx, c, "int:key")
	if err != nil {
		t.Fatalf("Failed to get int: %v", err)
	}

	if num != 42 {
		t.Errorf("Expected 42, got %d", num)
	}

	// 切片类型
	slice := []string{"a", "b", "c"}

	if err := cache.Set(ctx, c, "slice:key", slice, 0); err != nil {
		t.Fatalf("Failed to set slice: %v", err)
	}

	retrievedSlice, err := cache.Get[[]string](ctx, c, "slice:key")
	if err != nil {
		t.Fatalf("Failed to get slice: %v", err)
	}

	if len(retrievedSlice) != len(slice) {
		t.Errorf("Slice length mismatch: expected %d, got %d", len(slice), len(retrievedSlice))
	}

	for i, v := range slice {
		if retrievedSlice[i] != v {
			t.Errorf("Slice element %d mismatch: expected %s, got %s", i, v, retrievedSlice[i])
		}
	}
}

package vault_test

import (
	"context"
	"testing"

	"github.com/portafy/portafy/pkg/configs"
	"github.com/portafy/portafy/pkg/internal/vault"
)

func newManager(t *testing.T) *vault.Manager {
	t.Helper()

	if err := configs.InitConfig(t.TempDir()); err != nil {
		t.Fatalf("init config: %v", err)
	}

	return vault.NewManager(&fakeStore{}, newMemoryKV(t), nil)
}

// TestManagerGetAndEnd 验证会话懒加载、复用与登出回收.
func TestManagerGetAndEnd(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	sess, err := m.Get(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if sess.User() != "alice@example.com" {
		t.Errorf("unexpected user: %s", sess.User())
	}
	if m.Count() != 1 {
		t.Errorf("want 1 session, got %d", m.Count())
	}

	again, err := m.Get(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if again != sess {
		t.Error("same user should get the same session instance")
	}

	if _, err := m.Get(ctx, "bob@example.com"); err != nil {
		t.Fatalf("get second user: %v", err)
	}
	if m.Count() != 2 {
		t.Errorf("want 2 sessions, got %d", m.Count())
	}

	m.End("alice@example.com")
	if m.Count() != 1 {
		t.Errorf("want 1 session after sign-out, got %d", m.Count())
	}
	if _, ok := m.Peek("alice@example.com"); ok {
		t.Error("ended session should be gone")
	}

	// 重复登出是无操作
	m.End("alice@example.com")
	if m.Count() != 1 {
		t.Errorf("double sign-out changed count: %d", m.Count())
	}
}

// TestManagerEvictIdleKeepsFresh 验证清扫不会回收仍然活跃的会话.
func TestManagerEvictIdleKeepsFresh(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	if _, err := m.Get(ctx, "alice@example.com"); err != nil {
		t.Fatalf("get session: %v", err)
	}

	if evicted := m.EvictIdle(); evicted != 0 {
		t.Errorf("fresh session evicted: %d", evicted)
	}
	if m.Count() != 1 {
		t.Errorf("want 1 session, got %d", m.Count())
	}
}

package vault

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/portafy/portafy/pkg/configs"
	"github.com/portafy/portafy/pkg/internal/storage/kv"
	"github.com/portafy/portafy/pkg/internal/storage/mq"
	"github.com/portafy/portafy/pkg/internal/store"
	"github.com/portafy/portafy/pkg/metrics"
	"github.com/portafy/portafy/pkg/queue"
)

// Manager 维护按用户索引的会话表，负责懒加载、闲置回收与会话事件.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	store store.Store
	kvs   kv.KVStore
	mqc   *mq.Client

	cfg configs.VaultConfig
}

// NewManager 创建会话管理器.mqc 可以为 nil，此时不发会话事件.
func NewManager(st store.Store, kvs kv.KVStore, mqc *mq.Client) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		store:    st,
		kvs:      kvs,
		mqc:      mqc,
		cfg:      configs.GetConfig().Vault,
	}
}

// trashSlot 拼接用户的回收站槽位名.
// 基础槽位名沿用固定值，按用户追加后缀隔离.
func (m *Manager) trashSlot(user string) string {
	return m.cfg.TrashSlot + ":" + user
}

// Get 返回用户会话，必要时从持久层装载.
func (m *Manager) Get(ctx context.Context, user string) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[user]
	m.mu.RUnlock()

	if ok {
		sess.Touch()

		return sess, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// 双重检查，避免并发装载同一用户
	if sess, ok = m.sessions[user]; ok {
		sess.Touch()

		return sess, nil
	}

	ts := NewTrashStore(m.kvs, m.trashSlot(user), m.cfg.StripContent)
	sess = NewSession(user, ts)

	if err := sess.Load(ctx, m.store); err != nil {
		return nil, err
	}

	m.sessions[user] = sess
	metrics.ActiveSessions.Set(float64(len(m.sessions)))

	m.publishStarted(sess)

	return sess, nil
}

// Peek 返回已装载的会话，不触发装载.
func (m *Manager) Peek(user string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[user]

	return sess, ok
}

// End 主动结束用户会话（登出）.用户无会话时静默返回.
func (m *Manager) End(user string) {
	m.evict(user, "signout")
}

// EvictIdle 回收闲置超过配置阈值的会话，返回回收数量.
// 由调度器周期调用.
func (m *Manager) EvictIdle() int {
	idle := m.cfg.GetSessionIdle()
	cutoff := time.Now().Add(-idle)

	m.mu.RLock()
	var stale []string
	for user, sess := range m.sessions {
		if sess.LastActive().Before(cutoff) {
			stale = append(stale, user)
		}
	}
	m.mu.RUnlock()

	for _, user := range stale {
		m.evict(user, "idle")
	}

	if len(stale) > 0 {
		log.Info().Int("count", len(stale)).Dur("idle", idle).Msg("回收闲置会话")
	}

	return len(stale)
}

// Count 返回当前活跃会话数.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

func (m *Manager) evict(user, reason string) {
	m.mu.Lock()
	sess, ok := m.sessions[user]
	if ok {
		delete(m.sessions, user)
		metrics.ActiveSessions.Set(float64(len(m.sessions)))
	}
	m.mu.Unlock()

	if !ok {
		return
	}

	m.publishEnded(sess, reason)
}

func (m *Manager) sessionEventsEnabled() bool {
	ev := configs.GetConfig().Events

	return m.mqc != nil && ev.Enabled && ev.SessionEvents
}

func (m *Manager) publishStarted(sess *Session) {
	if !m.sessionEventsEnabled() {
		return
	}

	err := queue.PublishSessionStarted(m.mqc.Publisher(), queue.SessionStartedPayload{
		User:         sess.User(),
		StartedAt:    sess.StartedAt(),
		TrashEntries: len(sess.Trash()),
	})
	if err != nil {
		log.Warn().Err(err).Str("user", sess.User()).Msg("发布会话建立事件失败")
	}
}

func (m *Manager) publishEnded(sess *Session, reason string) {
	if !m.sessionEventsEnabled() {
		return
	}

	err := queue.PublishSessionEnded(m.mqc.Publisher(), queue.SessionEndedPayload{
		User:    sess.User(),
		EndedAt: time.Now(),
		Reason:  reason,
	})
	if err != nil {
		log.Warn().Err(err).Str("user", sess.User()).Msg("发布会话结束事件失败")
	}
}

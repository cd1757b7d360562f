package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	viewed    map[uint]int64
	expiresAt time.Time
}

// MemoryStore プロセス内のセッションストア (Redis が使えない場合のフォールバック)
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemoryStore MemoryStoreを作成
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

// Load セッションを読み込む
func (m *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return New(id), nil
	}
	if m.ttl > 0 && m.now().After(entry.expiresAt) {
		delete(m.entries, id)
		return New(id), nil
	}

	s := New(id)
	for k, v := range entry.viewed {
		s.ViewedPortfolios[k] = v
	}
	return s, nil
}

// Save セッションを保存 (有効期限を延長する)
func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	viewed := make(map[uint]int64, len(s.ViewedPortfolios))
	for k, v := range s.ViewedPortfolios {
		viewed[k] = v
	}
	m.entries[s.ID] = memoryEntry{viewed: viewed, expiresAt: m.now().Add(m.ttl)}
	return nil
}

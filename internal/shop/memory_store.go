package shop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultSessionTTL is how long an idle session is kept
	DefaultSessionTTL = 30 * time.Minute

	// CleanupInterval is how often the background cleanup runs
	CleanupInterval = 30 * time.Second
)

type storedSession struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore implements Store in process memory. Sessions are stored
// serialized so callers never share state with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]storedSession
	ttl      time.Duration
	locks    *keyedMutex

	stopCleanup chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	s := &MemoryStore{
		sessions:    make(map[string]storedSession),
		ttl:         ttl,
		locks:       newKeyedMutex(),
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

func (s *MemoryStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireSessions(time.Now())
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) expireSessions(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, stored := range s.sessions {
		if now.After(stored.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

func (s *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	stored, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || time.Now().After(stored.expiresAt) {
		return nil, ErrSessionNotFound
	}

	return decodeSession(stored.data)
}

func (s *MemoryStore) Save(_ context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = storedSession{
		data:      data,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Update serializes updates per session id with an in-process lock.
func (s *MemoryStore) Update(ctx context.Context, id string, fn UpdateFunc) (*Session, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	current, err := s.Load(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		current = nil
	} else if err != nil {
		return nil, err
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Close stops the background cleanup and waits for it to finish. Calling
// it again is a no-op.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopCleanup) })
	s.wg.Wait()
	return nil
}

func decodeSession(data []byte) (*Session, error) {
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session failed: %w", err)
	}
	return &session, nil
}

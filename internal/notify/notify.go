// Package notify keeps short-lived, per-session notifications such as
// "added to cart" toasts. Each notification removes itself after a TTL.
package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a notification stays visible unless dismissed.
const DefaultTTL = 3 * time.Second

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type entry struct {
	n     Notification
	timer *time.Timer
}

// Center owns every live notification and its expiry timer.
type Center struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]map[string]*entry // key -> notification id -> entry
	closed  bool
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		ttl:     ttl,
		entries: make(map[string]map[string]*entry),
	}
}

// Push shows message to the owner of key until the TTL elapses.
func (c *Center) Push(key, message string) Notification {
	now := time.Now()
	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return n
	}

	e := &entry{n: n}
	if c.entries[key] == nil {
		c.entries[key] = make(map[string]*entry)
	}
	c.entries[key][n.ID] = e
	e.timer = time.AfterFunc(c.ttl, func() { c.remove(key, n.ID) })
	return n
}

// Active returns the live notifications for key, oldest first.
func (c *Center) Active(key string) []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, 0, len(c.entries[key]))
	for _, e := range c.entries[key] {
		out = append(out, e.n)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Dismiss removes a notification before it expires. Unknown or already
// expired ids are ignored.
func (c *Center) Dismiss(key, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key][id]
	if !ok {
		return
	}
	e.timer.Stop()
	c.deleteLocked(key, id)
}

// DismissAll drops every notification of key, e.g. when a session ends.
func (c *Center) DismissAll(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries[key] {
		e.timer.Stop()
	}
	delete(c.entries, key)
}

func (c *Center) remove(key, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteLocked(key, id)
}

func (c *Center) deleteLocked(key, id string) {
	byID, ok := c.entries[key]
	if !ok {
		return
	}
	delete(byID, id)
	if len(byID) == 0 {
		delete(c.entries, key)
	}
}

// Close stops all pending timers. Later pushes are not stored.
func (c *Center) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, byID := range c.entries {
		for _, e := range byID {
			e.timer.Stop()
		}
	}
	c.entries = make(map[string]map[string]*entry)
	c.closed = true
	return nil
}

// For binds the center to one session key.
func (c *Center) For(key string) *Session {
	return &Session{center: c, key: key}
}

// Session is a Center view scoped to a single key.
type Session struct {
	center *Center
	key    string
}

func (s *Session) Notify(message string) {
	s.center.Push(s.key, message)
}

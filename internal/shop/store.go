package shop

import "context"

// UpdateFunc receives the stored session, or nil when there is none, and
// returns the session to store. It may run more than once when the store
// detects a concurrent write, so it must not have side effects of its own.
type UpdateFunc func(current *Session) (*Session, error)

// Store keeps sessions between requests. Sessions are ephemeral: a store
// may drop one after its TTL.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	// Update applies fn as one read-modify-write. Updates of the same id
	// never overwrite each other, also across processes sharing the store.
	// Errors returned by fn are passed through unchanged and nothing is saved.
	Update(ctx context.Context, id string, fn UpdateFunc) (*Session, error)
	Delete(ctx context.Context, id string) error
}

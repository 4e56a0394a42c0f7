package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"taskcal-bot/internal/conversation"
	"taskcal-bot/internal/conversation/repository"
)

const (
	DefaultMaxSessions = 1000
	DefaultSessionTTL  = 30 * time.Minute
)

// EvictFunc is called when a session is dropped by expiry or capacity,
// not when it is deleted explicitly.
type EvictFunc func(s conversation.Session)

type entry struct {
	session conversation.Session
	deleted bool
}

type chatLock struct {
	mu   sync.Mutex
	refs int
}

type sessionRepository struct {
	cache *expirable.LRU[int64, entry]

	locksMu sync.Mutex
	locks   map[int64]*chatLock
}

// New creates an in-memory SessionRepository. Idle sessions expire after ttl.
func New(maxSessions int, ttl time.Duration, onEvict EvictFunc) repository.SessionRepository {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	r := &sessionRepository{locks: make(map[int64]*chatLock)}
	r.cache = expirable.NewLRU[int64, entry](maxSessions, func(chatID int64, e entry) {
		if e.deleted || onEvict == nil {
			return
		}
		onEvict(e.session)
	}, ttl)
	return r
}

func (r *sessionRepository) Get(ctx context.Context, chatID int64) (conversation.Session, bool) {
	e, ok := r.cache.Get(chatID)
	if !ok {
		return conversation.Session{}, false
	}
	return e.session, true
}

// Save stores s and restarts its idle timer.
func (r *sessionRepository) Save(ctx context.Context, s conversation.Session) {
	r.cache.Add(s.ChatID, entry{session: s})
}

func (r *sessionRepository) Delete(ctx context.Context, chatID int64) {
	e, ok := r.cache.Peek(chatID)
	if !ok {
		return
	}
	// Mark first so the eviction callback can tell this apart from expiry.
	e.deleted = true
	r.cache.Add(chatID, e)
	r.cache.Remove(chatID)
}

func (r *sessionRepository) Len() int {
	return r.cache.Len()
}

func (r *sessionRepository) Lock(chatID int64) func() {
	r.locksMu.Lock()
	l, ok := r.locks[chatID]
	if !ok {
		l = &chatLock{}
		r.locks[chatID] = l
	}
	l.refs++
	r.locksMu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		r.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(r.locks, chatID)
		}
		r.locksMu.Unlock()
	}
}

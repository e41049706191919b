package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"upsell.GO/upsell"
)

// Store keeps the live checkout sessions, one upsell controller per shopper
// checkout. Sessions are created when the widget frontend first reports a
// cart, updated on every cart change, and swept after SessionTTL idle.
type Store struct {
	selector  *upsell.Selector
	mutator   upsell.CartMutator
	ttl       time.Duration
	bannerTTL time.Duration

	mu       sync.RWMutex
	sessions map[string]*upsell.Session
}

func NewStore(selector *upsell.Selector, mutator upsell.CartMutator, ttl, bannerTTL time.Duration) *Store {
	return &Store{
		selector:  selector,
		mutator:   mutator,
		ttl:       ttl,
		bannerTTL: bannerTTL,
		sessions:  make(map[string]*upsell.Session),
	}
}

var (
	defaultMu    sync.RWMutex
	defaultStore *Store
)

// SetDefault installs the process-wide store (read by the sweep job).
func SetDefault(st *Store) {
	defaultMu.Lock()
	defaultStore = st
	defaultMu.Unlock()
}

// Default returns the process-wide store, or nil before SetDefault.
func Default() *Store {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultStore
}

// Create opens a new session bound to the host cart id.
func (st *Store) Create(cartID string) *upsell.Session {
	s := upsell.NewSession(uuid.NewString(), cartID, st.selector, st.mutator)
	if st.bannerTTL > 0 {
		s.BannerTTL = st.bannerTTL
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns a session by id and marks it recently used.
func (st *Store) Get(id string) (*upsell.Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		s.Touch()
	}
	return s, ok
}

// UpdateLines replaces a session's cart snapshot, triggering recomputation.
func (st *Store) UpdateLines(id string, lines []upsell.CartLine) bool {
	s, ok := st.Get(id)
	if !ok {
		return false
	}
	s.CartChanged(lines)
	return true
}

// Remove closes and forgets a session.
func (st *Store) Remove(id string) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if ok {
		s.Close()
	}
}

// Sweep closes sessions idle longer than the store TTL. Returns how many
// were removed.
func (st *Store) Sweep(now time.Time) int {
	st.mu.Lock()
	var expired []*upsell.Session
	for id, s := range st.sessions {
		if now.Sub(s.LastSeen()) > st.ttl {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	return len(expired)
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

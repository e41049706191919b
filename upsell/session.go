package upsell

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// DefaultBannerTTL is how long a mutation error banner stays visible.
const DefaultBannerTTL = 3 * time.Second

// ErrAddInFlight rejects a second add while one is still awaiting the host.
var ErrAddInFlight = errors.New("add to cart already in flight")

// ErrSessionClosed is returned once a session has been torn down.
var ErrSessionClosed = errors.New("session closed")

// Session is the per-checkout upsell controller. Cart snapshot changes
// trigger recomputation; a newer change cancels the in-flight fetch and its
// late result is dropped (last-write-wins on the displayed state).
type Session struct {
	ID     string
	CartID string

	selector *Selector
	mutator  CartMutator

	BannerTTL time.Duration

	mu          sync.Mutex
	gen         uint64
	cancel      context.CancelFunc
	fetch       FetchState
	add         AddState
	offers      []CandidateProduct
	lines       []CartLine
	banner      string
	bannerTimer *time.Timer
	lastSeen    time.Time
	closed      bool

	// notify fires after every fetch settles (published or dropped). Tests use it.
	notify func()
}

func NewSession(id, cartID string, selector *Selector, mutator CartMutator) *Session {
	return &Session{
		ID:        id,
		CartID:    cartID,
		selector:  selector,
		mutator:   mutator,
		BannerTTL: DefaultBannerTTL,
		lastSeen:  time.Now(),
	}
}

// View is an immutable snapshot of the session for rendering.
type View struct {
	Fetch  FetchState
	Add    AddState
	Offers []CandidateProduct
	Banner string
}

// View returns the current displayable state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	offers := make([]CandidateProduct, len(s.offers))
	copy(offers, s.offers)
	return View{Fetch: s.fetch, Add: s.add, Offers: offers, Banner: s.banner}
}

// CartChanged replaces the cart snapshot and kicks off recomputation. An
// in-flight fetch for an older snapshot is cancelled; if its result still
// arrives it is discarded. An empty cart clears the offers without fetching.
func (s *Session) CartChanged(lines []CartLine) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.lines = append([]CartLine(nil), lines...)
	s.lastSeen = time.Now()
	s.gen++
	gen := s.gen
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if len(lines) == 0 {
		s.fetch = FetchIdle
		s.offers = nil
		s.mu.Unlock()
		s.settled()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.fetch = Fetching
	s.mu.Unlock()

	go s.runFetch(ctx, gen, lines)
}

func (s *Session) runFetch(ctx context.Context, gen uint64, lines []CartLine) {
	offers, err := s.selector.SelectOffers(ctx, lines)

	s.mu.Lock()
	if s.closed || gen != s.gen {
		// Superseded by a newer cart change; drop the result.
		s.mu.Unlock()
		s.settled()
		return
	}
	s.cancel = nil
	if err != nil {
		log.Printf("upsell: session %s: %v", s.ID, err)
		s.offers = nil
		s.fetch = FetchFailed
	} else {
		s.offers = offers
		s.fetch = FetchReady
	}
	s.mu.Unlock()
	s.settled()
}

// AddToCart issues the single-attempt host cart mutation for an offer's
// variant. While one mutation is awaiting the host, further adds are
// rejected with ErrAddInFlight. A host rejection becomes a transient banner
// that auto-dismisses after BannerTTL.
func (s *Session) AddToCart(ctx context.Context, variantID string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.add == Adding {
		s.mu.Unlock()
		return ErrAddInFlight
	}
	s.add = Adding
	s.lastSeen = time.Now()
	s.mu.Unlock()

	err := s.mutator.AddLine(ctx, s.CartID, variantID, 1)

	s.mu.Lock()
	if err != nil {
		s.add = AddErrorShown
		s.banner = err.Error()
		if s.bannerTimer != nil {
			s.bannerTimer.Stop()
		}
		s.bannerTimer = time.AfterFunc(s.BannerTTL, s.dismissBanner)
	} else {
		// A success also retires any banner still up from an earlier error.
		s.add = AddIdle
		s.banner = ""
		if s.bannerTimer != nil {
			s.bannerTimer.Stop()
			s.bannerTimer = nil
		}
	}
	s.mu.Unlock()
	return err
}

func (s *Session) dismissBanner() {
	s.mu.Lock()
	if s.add == AddErrorShown {
		s.add = AddIdle
		s.banner = ""
	}
	s.bannerTimer = nil
	s.mu.Unlock()
}

// Touch marks the session as recently used (read access).
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// LastSeen reports the last cart change or access time.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Close tears the session down: cancels any in-flight fetch and stops the
// banner timer so no callback outlives the session.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.bannerTimer != nil {
		s.bannerTimer.Stop()
		s.bannerTimer = nil
	}
	s.mu.Unlock()
}

func (s *Session) settled() {
	if s.notify != nil {
		s.notify()
	}
}

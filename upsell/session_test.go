package upsell

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// gateCatalog serves one scripted response per lookup call and can hold a
// call open until released, to exercise supersede behavior.
type gateCatalog struct {
	mu        sync.Mutex
	calls     int
	gates     map[int]chan struct{} // lookup call number → release gate
	responses map[int][]CandidateProduct
	handles   []string
}

func newGateCatalog(handles []string) *gateCatalog {
	return &gateCatalog{
		gates:     make(map[int]chan struct{}),
		responses: make(map[int][]CandidateProduct),
		handles:   handles,
	}
}

func (g *gateCatalog) ProductCollections(ctx context.Context, ids []string, per int) ([]string, error) {
	g.mu.Lock()
	g.calls++
	n := g.calls
	gate := g.gates[n]
	g.mu.Unlock()
	if gate != nil {
		<-gate // hold until the test releases this call
	}
	return g.handles, nil
}

func (g *gateCatalog) SearchProducts(ctx context.Context, query string, limit int) ([]CandidateProduct, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.responses[g.calls], nil
}

type fakeMutator struct {
	mu       sync.Mutex
	err      error
	gate     chan struct{}
	calls    int
	cartID   string
	variant  string
	quantity int
}

func (m *fakeMutator) setErr(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

func (m *fakeMutator) AddLine(ctx context.Context, cartID, variantID string, qty int) error {
	m.mu.Lock()
	m.calls++
	m.cartID = cartID
	m.variant = variantID
	m.quantity = qty
	gate := m.gate
	err := m.err
	m.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return err
}

func waitSettled(t *testing.T, ch <-chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for fetch %d/%d to settle", i+1, n)
		}
	}
}

func testSession(catalog CatalogQuerier, mutator CartMutator) (*Session, chan struct{}) {
	s := NewSession("sess-1", "cart-1", NewSelector(catalog), mutator)
	settled := make(chan struct{}, 8)
	s.notify = func() { settled <- struct{}{} }
	return s, settled
}

func TestSession_CartChanged_PublishesOffers(t *testing.T) {
	cat := newGateCatalog([]string{"summer"})
	cat.responses[1] = []CandidateProduct{candidate("c1", "v2")}
	s, settled := testSession(cat, &fakeMutator{})
	defer s.Close()

	s.CartChanged([]CartLine{{VariantID: "v1", ProductID: "p1"}})
	waitSettled(t, settled, 1)

	v := s.View()
	if v.Fetch != FetchReady {
		t.Errorf("fetch = %v, want ready", v.Fetch)
	}
	if len(v.Offers) != 1 || v.Offers[0].ID != "c1" {
		t.Errorf("offers = %+v, want [c1]", v.Offers)
	}
}

func TestSession_EmptyCart_ClearsWithoutFetch(t *testing.T) {
	cat := newGateCatalog([]string{"summer"})
	cat.responses[1] = []CandidateProduct{candidate("c1", "v2")}
	s, settled := testSession(cat, &fakeMutator{})
	defer s.Close()

	s.CartChanged([]CartLine{{VariantID: "v1", ProductID: "p1"}})
	waitSettled(t, settled, 1)

	s.CartChanged(nil)
	waitSettled(t, settled, 1)

	v := s.View()
	if v.Fetch != FetchIdle {
		t.Errorf("fetch = %v, want idle", v.Fetch)
	}
	if len(v.Offers) != 0 {
		t.Errorf("offers = %+v, want empty", v.Offers)
	}
	if cat.calls != 1 {
		t.Errorf("lookups = %d, want 1 (no fetch for empty cart)", cat.calls)
	}
}

func TestSession_FetchFailure_ClearsPriorOffers(t *testing.T) {
	cat := &failAfterCatalog{
		first: []CandidateProduct{candidate("c1", "v2")},
	}
	s, settled := testSession(cat, &fakeMutator{})
	defer s.Close()

	s.CartChanged([]CartLine{{VariantID: "v1", ProductID: "p1"}})
	waitSettled(t, settled, 1)
	if v := s.View(); len(v.Offers) != 1 {
		t.Fatalf("precondition: offers = %d, want 1", len(v.Offers))
	}

	s.CartChanged([]CartLine{{VariantID: "v1", ProductID: "p1"}, {VariantID: "v9", ProductID: "p9"}})
	waitSettled(t, settled, 1)

	v := s.View()
	if v.Fetch != FetchFailed {
		t.Errorf("fetch = %v, want failed", v.Fetch)
	}
	if len(v.Offers) != 0 {
		t.Errorf("offers = %+v, want cleared on failure, not stale", v.Offers)
	}
}

// failAfterCatalog succeeds on the first lookup, errors afterwards.
type failAfterCatalog struct {
	mu    sync.Mutex
	calls int
	first []CandidateProduct
}

func (f *failAfterCatalog) ProductCollections(ctx context.Context, ids []string, per int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls > 1 {
		return nil, errors.New("catalog unavailable")
	}
	return []string{"h"}, nil
}

func (f *failAfterCatalog) SearchProducts(ctx context.Context, query string, limit int) ([]CandidateProduct, error) {
	return f.first, nil
}

func TestSession_StaleFetchSuperseded(t *testing.T) {
	cat := newGateCatalog([]string{"h"})
	gate := make(chan struct{})
	cat.gates[1] = gate
	cat.responses[1] = []CandidateProduct{candidate("stale", "v8")}
	cat.responses[2] = []CandidateProduct{candidate("fresh", "v9")}

	s, settled := testSession(cat, &fakeMutator{})
	defer s.Close()

	s.CartChanged([]CartLine{{VariantID: "v1", ProductID: "p1"}}) // held open at the gate
	s.CartChanged([]CartLine{{VariantID: "v2", ProductID: "p2"}}) // supersedes
	waitSettled(t, settled, 1)                                    // fresh fetch settles

	close(gate) // stale fetch finally returns
	waitSettled(t, settled, 1)

	v := s.View()
	if v.Fetch != FetchReady {
		t.Errorf("fetch = %v, want ready", v.Fetch)
	}
	if len(v.Offers) != 1 || v.Offers[0].ID != "fresh" {
		t.Errorf("offers = %+v, want the fresh result, stale dropped", v.Offers)
	}
}

func TestSession_AddToCart_Success(t *testing.T) {
	mut := &fakeMutator{}
	s, _ := testSession(newGateCatalog(nil), mut)
	defer s.Close()

	if err := s.AddToCart(context.Background(), "v7"); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if mut.calls != 1 || mut.cartID != "cart-1" || mut.variant != "v7" || mut.quantity != 1 {
		t.Errorf("mutator got %d calls, cart=%s variant=%s qty=%d", mut.calls, mut.cartID, mut.variant, mut.quantity)
	}
	if v := s.View(); v.Add != AddIdle || v.Banner != "" {
		t.Errorf("view = %+v, want idle with no banner", v)
	}
}

func TestSession_AddToCart_ErrorBanner(t *testing.T) {
	mut := &fakeMutator{err: &UserError{Message: "out of stock"}}
	s, _ := testSession(newGateCatalog(nil), mut)
	defer s.Close()
	s.BannerTTL = 30 * time.Millisecond

	err := s.AddToCart(context.Background(), "v7")
	var ue *UserError
	if !errors.As(err, &ue) || ue.Message != "out of stock" {
		t.Fatalf("err = %v, want user error", err)
	}

	// Busy flag is already down; the banner is up.
	v := s.View()
	if v.Add != AddErrorShown {
		t.Errorf("add = %v, want error shown", v.Add)
	}
	if v.Banner != "out of stock" {
		t.Errorf("banner = %q", v.Banner)
	}

	// Auto-dismiss.
	deadline := time.Now().Add(2 * time.Second)
	for {
		v = s.View()
		if v.Add == AddIdle && v.Banner == "" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("banner not dismissed: %+v", v)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSession_AddSuccessAfterError_ClearsBanner(t *testing.T) {
	mut := &fakeMutator{err: &UserError{Message: "out of stock"}}
	s, _ := testSession(newGateCatalog(nil), mut)
	defer s.Close()
	s.BannerTTL = time.Hour // the success, not the timer, must take it down

	if err := s.AddToCart(context.Background(), "v7"); err == nil {
		t.Fatal("first add: want error")
	}
	if v := s.View(); v.Add != AddErrorShown || v.Banner != "out of stock" {
		t.Fatalf("precondition: view = %+v, want error banner up", v)
	}

	mut.setErr(nil)
	if err := s.AddToCart(context.Background(), "v8"); err != nil {
		t.Fatalf("second add: %v", err)
	}

	v := s.View()
	if v.Add != AddIdle {
		t.Errorf("add = %v, want idle", v.Add)
	}
	if v.Banner != "" {
		t.Errorf("banner = %q, want cleared by the successful add", v.Banner)
	}
}

func TestSession_AddToCart_Reentrancy(t *testing.T) {
	gate := make(chan struct{})
	mut := &fakeMutator{gate: gate}
	s, _ := testSession(newGateCatalog(nil), mut)
	defer s.Close()

	firstDone := make(chan error, 1)
	go func() { firstDone <- s.AddToCart(context.Background(), "v7") }()

	// Wait until the first add is in flight.
	deadline := time.Now().Add(2 * time.Second)
	for s.View().Add != Adding {
		if time.Now().After(deadline) {
			t.Fatal("first add never entered flight")
		}
		time.Sleep(time.Millisecond)
	}

	if err := s.AddToCart(context.Background(), "v8"); !errors.Is(err, ErrAddInFlight) {
		t.Errorf("second add err = %v, want ErrAddInFlight", err)
	}

	close(gate)
	if err := <-firstDone; err != nil {
		t.Errorf("first add err = %v", err)
	}
	if mut.calls != 1 {
		t.Errorf("mutator calls = %d, want 1", mut.calls)
	}
}

func TestSession_Close_RejectsAdds(t *testing.T) {
	s, _ := testSession(newGateCatalog(nil), &fakeMutator{})
	s.Close()
	if err := s.AddToCart(context.Background(), "v1"); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("err = %v, want ErrSessionClosed", err)
	}
	// Cart changes after close are ignored.
	s.CartChanged([]CartLine{{VariantID: "v1", ProductID: "p1"}})
	if v := s.View(); v.Fetch != FetchIdle {
		t.Errorf("fetch = %v, want idle after close", v.Fetch)
	}
}

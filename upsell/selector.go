package upsell

import (
	"context"
	"fmt"
)

// Defaults for the selection pipeline, overridable via config.
const (
	DefaultMaxOffers             = 3
	DefaultCandidateLimit        = 10
	DefaultCollectionsPerProduct = 5
)

// Selector runs the upsell candidate selection pipeline: derive collection
// handles from the cart, search the catalog for candidates in those
// collections, drop anything already in the cart, keep the first MaxOffers.
type Selector struct {
	Catalog CatalogQuerier

	MaxOffers             int
	CandidateLimit        int
	CollectionsPerProduct int
}

func NewSelector(catalog CatalogQuerier) *Selector {
	return &Selector{
		Catalog:               catalog,
		MaxOffers:             DefaultMaxOffers,
		CandidateLimit:        DefaultCandidateLimit,
		CollectionsPerProduct: DefaultCollectionsPerProduct,
	}
}

// SelectOffers produces the ordered offer list (≤ MaxOffers) for the given
// cart lines. Empty cart returns nil without touching the catalog. The two
// catalog calls are sequential: the search depends on the lookup's handles.
func (s *Selector) SelectOffers(ctx context.Context, lines []CartLine) ([]CandidateProduct, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	productIDs := dedupe(productIDsOf(lines))
	handles, err := s.Catalog.ProductCollections(ctx, productIDs, s.CollectionsPerProduct)
	if err != nil {
		return nil, fmt.Errorf("collection lookup: %w", err)
	}
	unique := dedupe(handles)
	if len(unique) == 0 {
		// No handles, no meaningful filter. Skip the search entirely.
		return nil, nil
	}

	candidates, err := s.Catalog.SearchProducts(ctx, BuildCollectionFilter(unique), s.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("candidate search: %w", err)
	}

	inCart := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		inCart[l.VariantID] = struct{}{}
	}

	offers := make([]CandidateProduct, 0, s.MaxOffers)
	for _, c := range candidates {
		if _, taken := inCart[c.Variant.ID]; taken {
			continue
		}
		offers = append(offers, c)
		if len(offers) == s.MaxOffers {
			break
		}
	}
	return offers, nil
}

func productIDsOf(lines []CartLine) []string {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.ProductID != "" {
			ids = append(ids, l.ProductID)
		}
	}
	return ids
}

// dedupe keeps first occurrences, preserving order.
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

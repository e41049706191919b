package upsell

import "context"

// CartLine is one entry of the shopper's in-progress order. Owned by the host
// cart state; read-only here.
type CartLine struct {
	VariantID string `json:"variantId" mapstructure:"variantId"`
	ProductID string `json:"productId" mapstructure:"productId"`
}

// Price is a variant price in a single currency.
type Price struct {
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currencyCode"`
}

// Variant is the representative purchasable configuration of a candidate.
type Variant struct {
	ID    string `json:"id"`
	Price Price  `json:"price"`
}

// CandidateProduct is one product eligible for upsell. Transient: re-fetched
// on every cart change, never persisted.
type CandidateProduct struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Variant  Variant `json:"variant"`
}

// CatalogQuerier is the hosted catalog query capability. Implemented by the
// storefront package; faked in tests.
type CatalogQuerier interface {
	// ProductCollections batch-resolves the first perProduct collection
	// handles for each product id. The flattened result may contain
	// duplicates; callers de-duplicate.
	ProductCollections(ctx context.Context, productIDs []string, perProduct int) ([]string, error)

	// SearchProducts runs one bounded catalog search with a boolean
	// collection-membership query string.
	SearchProducts(ctx context.Context, query string, limit int) ([]CandidateProduct, error)
}

// CartMutator is the host cart mutation capability. AddLine is a single
// attempt; a *UserError return carries the host's discriminated error result.
type CartMutator interface {
	AddLine(ctx context.Context, cartID, variantID string, quantity int) error
}

// UserError is a cart mutation rejected by the host (e.g. out of stock).
type UserError struct {
	Message string `json:"message"`
}

func (e *UserError) Error() string { return e.Message }

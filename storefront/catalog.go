package storefront

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mitchellh/mapstructure"

	"upsell.GO/upsell"
)

// Catalog implements upsell.CatalogQuerier against the Storefront API.
type Catalog struct {
	client *Client
}

func NewCatalog(client *Client) *Catalog {
	return &Catalog{client: client}
}

// Payload shapes for mapstructure decoding. mapstructure matches keys
// case-insensitively, so the GraphQL camelCase maps onto exported fields.

type collectionsPayload struct {
	Nodes []struct {
		ID          string `mapstructure:"id"`
		Collections struct {
			Nodes []struct {
				Handle string `mapstructure:"handle"`
			} `mapstructure:"nodes"`
		} `mapstructure:"collections"`
	} `mapstructure:"nodes"`
}

type searchPayload struct {
	Products struct {
		Nodes []struct {
			ID     string `mapstructure:"id"`
			Title  string `mapstructure:"title"`
			Images struct {
				Nodes []struct {
					URL string `mapstructure:"url"`
				} `mapstructure:"nodes"`
			} `mapstructure:"images"`
			Variants struct {
				Nodes []struct {
					ID    string `mapstructure:"id"`
					Price struct {
						Amount       string `mapstructure:"amount"`
						CurrencyCode string `mapstructure:"currencyCode"`
					} `mapstructure:"price"`
				} `mapstructure:"nodes"`
			} `mapstructure:"variants"`
		} `mapstructure:"nodes"`
	} `mapstructure:"products"`
}

// ProductCollections batch-resolves each product's first perProduct
// collection handles. The flattened result may contain duplicates.
func (c *Catalog) ProductCollections(ctx context.Context, productIDs []string, perProduct int) ([]string, error) {
	data, err := c.client.Do(ctx, productCollectionsQuery, map[string]interface{}{
		"ids":   productIDs,
		"first": perProduct,
	})
	if err != nil {
		return nil, err
	}
	return decodeCollections(data)
}

func decodeCollections(data map[string]interface{}) ([]string, error) {
	var payload collectionsPayload
	if err := mapstructure.Decode(data, &payload); err != nil {
		return nil, fmt.Errorf("decode collections payload: %w", err)
	}
	var handles []string
	for _, node := range payload.Nodes {
		for _, col := range node.Collections.Nodes {
			handles = append(handles, col.Handle)
		}
	}
	return handles, nil
}

// SearchProducts runs one bounded catalog search with the given query string.
func (c *Catalog) SearchProducts(ctx context.Context, query string, limit int) ([]upsell.CandidateProduct, error) {
	data, err := c.client.Do(ctx, candidateSearchQuery, map[string]interface{}{
		"query": query,
		"first": limit,
	})
	if err != nil {
		return nil, err
	}
	return decodeCandidates(data)
}

func decodeCandidates(data map[string]interface{}) ([]upsell.CandidateProduct, error) {
	var payload searchPayload
	if err := mapstructure.Decode(data, &payload); err != nil {
		return nil, fmt.Errorf("decode search payload: %w", err)
	}
	candidates := make([]upsell.CandidateProduct, 0, len(payload.Products.Nodes))
	for _, node := range payload.Products.Nodes {
		if len(node.Variants.Nodes) == 0 {
			// A candidate without a purchasable variant cannot be offered.
			continue
		}
		v := node.Variants.Nodes[0]
		amount, err := strconv.ParseFloat(v.Price.Amount, 64)
		if err != nil {
			return nil, fmt.Errorf("product %s: bad price amount %q", node.ID, v.Price.Amount)
		}
		cand := upsell.CandidateProduct{
			ID:    node.ID,
			Title: node.Title,
			Variant: upsell.Variant{
				ID:    v.ID,
				Price: upsell.Price{Amount: amount, CurrencyCode: v.Price.CurrencyCode},
			},
		}
		if len(node.Images.Nodes) > 0 {
			cand.ImageURL = node.Images.Nodes[0].URL
		}
		candidates = append(candidates, cand)
	}
	return candidates, nil
}

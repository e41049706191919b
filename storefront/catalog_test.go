package storefront

import (
	"errors"
	"testing"

	"upsell.GO/upsell"
)

func TestDecodeCollections(t *testing.T) {
	data := map[string]interface{}{
		"nodes": []interface{}{
			map[string]interface{}{
				"id": "p1",
				"collections": map[string]interface{}{
					"nodes": []interface{}{
						map[string]interface{}{"handle": "summer"},
						map[string]interface{}{"handle": "sale"},
					},
				},
			},
			map[string]interface{}{
				"id": "p2",
				"collections": map[string]interface{}{
					"nodes": []interface{}{
						map[string]interface{}{"handle": "summer"},
					},
				},
			},
		},
	}
	handles, err := decodeCollections(data)
	if err != nil {
		t.Fatalf("decodeCollections: %v", err)
	}
	// Flattened, duplicates preserved; the selector de-duplicates.
	want := []string{"summer", "sale", "summer"}
	if len(handles) != len(want) {
		t.Fatalf("handles = %v, want %v", handles, want)
	}
	for i := range want {
		if handles[i] != want[i] {
			t.Errorf("handles[%d] = %q, want %q", i, handles[i], want[i])
		}
	}
}

func TestDecodeCollections_NonProductNodesIgnored(t *testing.T) {
	// The nodes() lookup can return nulls for ids that are not products.
	data := map[string]interface{}{
		"nodes": []interface{}{nil},
	}
	handles, err := decodeCollections(data)
	if err != nil {
		t.Fatalf("decodeCollections: %v", err)
	}
	if len(handles) != 0 {
		t.Errorf("handles = %v, want none", handles)
	}
}

func TestDecodeCandidates(t *testing.T) {
	data := map[string]interface{}{
		"products": map[string]interface{}{
			"nodes": []interface{}{
				map[string]interface{}{
					"id":    "c1",
					"title": "Beach Towel",
					"images": map[string]interface{}{
						"nodes": []interface{}{
							map[string]interface{}{"url": "https://cdn.example/towel.jpg"},
						},
					},
					"variants": map[string]interface{}{
						"nodes": []interface{}{
							map[string]interface{}{
								"id": "v2",
								"price": map[string]interface{}{
									"amount":       "19.99",
									"currencyCode": "USD",
								},
							},
						},
					},
				},
				map[string]interface{}{
					"id":     "c2",
					"title":  "No Variant",
					"images": map[string]interface{}{"nodes": []interface{}{}},
					"variants": map[string]interface{}{
						"nodes": []interface{}{},
					},
				},
			},
		},
	}
	candidates, err := decodeCandidates(data)
	if err != nil {
		t.Fatalf("decodeCandidates: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1 (variant-less product dropped)", len(candidates))
	}
	c := candidates[0]
	if c.ID != "c1" || c.Title != "Beach Towel" {
		t.Errorf("candidate = %+v", c)
	}
	if c.ImageURL != "https://cdn.example/towel.jpg" {
		t.Errorf("image = %q", c.ImageURL)
	}
	if c.Variant.ID != "v2" || c.Variant.Price.Amount != 19.99 || c.Variant.Price.CurrencyCode != "USD" {
		t.Errorf("variant = %+v", c.Variant)
	}
}

func TestDecodeCandidates_BadAmount(t *testing.T) {
	data := map[string]interface{}{
		"products": map[string]interface{}{
			"nodes": []interface{}{
				map[string]interface{}{
					"id":    "c1",
					"title": "Broken",
					"variants": map[string]interface{}{
						"nodes": []interface{}{
							map[string]interface{}{
								"id":    "v1",
								"price": map[string]interface{}{"amount": "not-a-number", "currencyCode": "USD"},
							},
						},
					},
				},
			},
		},
	}
	if _, err := decodeCandidates(data); err == nil {
		t.Fatal("want error for unparseable amount")
	}
}

func TestDecodeMutationResult(t *testing.T) {
	ok := map[string]interface{}{
		"cartLinesAdd": map[string]interface{}{
			"userErrors": []interface{}{},
		},
	}
	if err := decodeMutationResult(ok); err != nil {
		t.Errorf("success payload: %v", err)
	}

	rejected := map[string]interface{}{
		"cartLinesAdd": map[string]interface{}{
			"userErrors": []interface{}{
				map[string]interface{}{"message": "out of stock"},
			},
		},
	}
	err := decodeMutationResult(rejected)
	var ue *upsell.UserError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want *upsell.UserError", err)
	}
	if ue.Message != "out of stock" {
		t.Errorf("message = %q", ue.Message)
	}
}

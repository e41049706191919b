package storefront

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"upsell.GO/upsell"
)

// CartMutations implements upsell.CartMutator against the Storefront API.
type CartMutations struct {
	client *Client
}

func NewCartMutations(client *Client) *CartMutations {
	return &CartMutations{client: client}
}

type cartLinesAddPayload struct {
	CartLinesAdd struct {
		UserErrors []struct {
			Message string `mapstructure:"message"`
		} `mapstructure:"userErrors"`
	} `mapstructure:"cartLinesAdd"`
}

// AddLine issues the single-attempt add-line mutation. A host rejection comes
// back as *upsell.UserError; transport failures as plain errors.
func (m *CartMutations) AddLine(ctx context.Context, cartID, variantID string, quantity int) error {
	data, err := m.client.Do(ctx, cartLinesAddMutation, map[string]interface{}{
		"cartId": cartID,
		"lines": []map[string]interface{}{
			{"merchandiseId": variantID, "quantity": quantity},
		},
	})
	if err != nil {
		return err
	}
	return decodeMutationResult(data)
}

func decodeMutationResult(data map[string]interface{}) error {
	var payload cartLinesAddPayload
	if err := mapstructure.Decode(data, &payload); err != nil {
		return fmt.Errorf("decode mutation payload: %w", err)
	}
	if errs := payload.CartLinesAdd.UserErrors; len(errs) > 0 {
		return &upsell.UserError{Message: errs[0].Message}
	}
	return nil
}

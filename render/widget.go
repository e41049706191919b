package render

import (
	"upsell.GO/localization"
	"upsell.GO/upsell"
)

const widgetHeading = "You might also like"

// Widget builds the render tree for a session view. Returns nil when there is
// nothing to show (empty cart, no eligible offers, or a failed fetch).
func Widget(view upsell.View, prices *localization.Formatter) *Node {
	switch view.Fetch {
	case upsell.Fetching:
		tree := skeleton()
		return &tree
	case upsell.FetchReady:
		if len(view.Offers) == 0 {
			return nil
		}
		tree := offers(view, prices)
		return &tree
	default:
		// Idle or Failed: show nothing.
		return nil
	}
}

func skeleton() Node {
	row := InlineLayout(
		map[string]interface{}{"spacing": "base", "columns": []interface{}{64, "fill", "auto"}},
		SkeletonImage(),
		BlockStack(nil,
			SkeletonText(map[string]interface{}{"inlineSize": "large"}),
			SkeletonText(map[string]interface{}{"inlineSize": "small"}),
		),
		Button("Add", map[string]interface{}{"kind": "secondary", "disabled": true}),
	)
	return BlockStack(map[string]interface{}{"spacing": "loose"}, Heading(widgetHeading), row, row, row)
}

func offers(view upsell.View, prices *localization.Formatter) Node {
	children := []Node{Heading(widgetHeading)}
	adding := view.Add == upsell.Adding

	for i, o := range view.Offers {
		if i > 0 {
			children = append(children, Divider())
		}
		cols := make([]Node, 0, 3)
		if o.ImageURL != "" {
			cols = append(cols, Image(o.ImageURL))
		} else {
			cols = append(cols, SkeletonImage())
		}
		cols = append(cols,
			BlockStack(map[string]interface{}{"spacing": "none"},
				Text(o.Title, map[string]interface{}{"emphasis": "bold"}),
				Text(prices.Format(o.Variant.Price.Amount, o.Variant.Price.CurrencyCode), map[string]interface{}{"appearance": "subdued"}),
			),
			Button("Add", map[string]interface{}{
				"kind":      "secondary",
				"action":    "addLine",
				"variantId": o.Variant.ID,
				"disabled":  adding,
			}),
		)
		children = append(children, InlineLayout(
			map[string]interface{}{"spacing": "base", "columns": []interface{}{64, "fill", "auto"}},
			cols...,
		))
	}

	if view.Add == upsell.AddErrorShown && view.Banner != "" {
		children = append(children, Banner("critical", view.Banner))
	}
	return BlockStack(map[string]interface{}{"spacing": "loose"}, children...)
}

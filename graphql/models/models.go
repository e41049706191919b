package models

import graphql "github.com/graph-gophers/graphql-go"

// Wire models for the widget-facing GraphQL schema. Resolved via field
// resolvers; names match the schema case-insensitively.

type CartLineInput struct {
	VariantID graphql.ID
	ProductID graphql.ID
}

type Money struct {
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currencyCode"`
	Formatted    string  `json:"formatted"`
}

type OfferVariant struct {
	ID    graphql.ID `json:"id"`
	Price Money      `json:"price"`
}

type Offer struct {
	ID       graphql.ID   `json:"id"`
	Title    string       `json:"title"`
	ImageURL *string      `json:"imageUrl,omitempty"`
	Variant  OfferVariant `json:"variant"`
}

type OfferResult struct {
	Offers []Offer `json:"offers"`
}

type SessionView struct {
	Fetch  string  `json:"fetch"`
	Add    string  `json:"add"`
	Banner *string `json:"banner,omitempty"`
	Offers []Offer `json:"offers"`
}

type CartMutationResult struct {
	Type    string  `json:"type"`
	Message *string `json:"message,omitempty"`
}

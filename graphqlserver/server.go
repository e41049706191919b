package graphqlserver

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"upsell.GO/cart"
	"upsell.GO/graphql"
	gqlmodels "upsell.GO/graphql/models"
	"upsell.GO/graphql/registry"
	"upsell.GO/localization"
	"upsell.GO/upsell"
)

// RootResolver is the root for graphql-go. Query and Mutation resolvers share
// the same dependency set.
type RootResolver struct {
	Selector *upsell.Selector
	Mutator  upsell.CartMutator
	Sessions *cart.Store
	Prices   *localization.Formatter
}

// Query returns the query resolver.
func (r *RootResolver) Query() *QueryResolver {
	return &QueryResolver{root: r}
}

// Mutation returns the mutation resolver.
func (r *RootResolver) Mutation() *MutationResolver {
	return &MutationResolver{root: r}
}

type QueryResolver struct {
	root *RootResolver
}

// UpsellOffersArgs matches the upsellOffers query arguments.
type UpsellOffersArgs struct {
	Lines []gqlmodels.CartLineInput
}

func (r *QueryResolver) UpsellOffers(ctx context.Context, args UpsellOffersArgs) (*gqlmodels.OfferResult, error) {
	lines := make([]upsell.CartLine, 0, len(args.Lines))
	for _, l := range args.Lines {
		lines = append(lines, upsell.CartLine{
			VariantID: string(l.VariantID),
			ProductID: string(l.ProductID),
		})
	}
	offers, err := r.root.Selector.SelectOffers(ctx, lines)
	if err != nil {
		// Fail open to "show nothing": log, return an empty list.
		log.Printf("graphql: upsellOffers: %v", err)
		return &gqlmodels.OfferResult{Offers: []gqlmodels.Offer{}}, nil
	}
	return &gqlmodels.OfferResult{Offers: r.root.offerModels(offers)}, nil
}

// SessionOffers resolves against the session named by the Upsell-Session header.
func (r *QueryResolver) SessionOffers(ctx context.Context) (*gqlmodels.SessionView, error) {
	id := graphql.SessionIDFromContext(ctx)
	if id == "" || r.root.Sessions == nil {
		return nil, nil
	}
	s, ok := r.root.Sessions.Get(id)
	if !ok {
		return nil, nil
	}
	v := s.View()
	view := &gqlmodels.SessionView{
		Fetch:  v.Fetch.String(),
		Add:    v.Add.String(),
		Offers: r.root.offerModels(v.Offers),
	}
	if v.Banner != "" {
		banner := v.Banner
		view.Banner = &banner
	}
	return view, nil
}

// ExtensionArgs for extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *QueryResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

type MutationResolver struct {
	root *RootResolver
}

// CartLinesAddArgs matches the cartLinesAdd mutation arguments.
type CartLinesAddArgs struct {
	CartID    gql.ID
	VariantID gql.ID
	Quantity  *int32
}

func (r *MutationResolver) CartLinesAdd(ctx context.Context, args CartLinesAddArgs) (*gqlmodels.CartMutationResult, error) {
	qty := 1
	if args.Quantity != nil && *args.Quantity > 0 {
		qty = int(*args.Quantity)
	}
	err := r.root.Mutator.AddLine(ctx, string(args.CartID), string(args.VariantID), qty)
	if err == nil {
		return &gqlmodels.CartMutationResult{Type: "success"}, nil
	}
	var ue *upsell.UserError
	if errors.As(err, &ue) {
		return &gqlmodels.CartMutationResult{Type: "error", Message: &ue.Message}, nil
	}
	msg := err.Error()
	return &gqlmodels.CartMutationResult{Type: "error", Message: &msg}, nil
}

func (r *RootResolver) offerModels(offers []upsell.CandidateProduct) []gqlmodels.Offer {
	out := make([]gqlmodels.Offer, 0, len(offers))
	for _, o := range offers {
		m := gqlmodels.Offer{
			ID:    gql.ID(o.ID),
			Title: o.Title,
			Variant: gqlmodels.OfferVariant{
				ID: gql.ID(o.Variant.ID),
				Price: gqlmodels.Money{
					Amount:       o.Variant.Price.Amount,
					CurrencyCode: o.Variant.Price.CurrencyCode,
					Formatted:    r.Prices.Format(o.Variant.Price.Amount, o.Variant.Price.CurrencyCode),
				},
			},
		}
		if o.ImageURL != "" {
			img := o.ImageURL
			m.ImageURL = &img
		}
		out = append(out, m)
	}
	return out
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(root *RootResolver) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), root, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}

package offers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"upsell.GO/api"
	"upsell.GO/render"
	"upsell.GO/upsell"
)

func init() {
	api.RegisterModule(RegisterOfferRoutes)
}

// OfferView is the wire shape of one rendered offer.
type OfferView struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	ImageURL string    `json:"imageUrl,omitempty"`
	Variant  string    `json:"variantId"`
	Price    PriceView `json:"price"`
}

type PriceView struct {
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currencyCode"`
	Formatted    string  `json:"formatted"`
}

// StateView exposes the explicit state machines to the frontend.
type StateView struct {
	Fetch string `json:"fetch"`
	Add   string `json:"add"`
}

type sessionResponse struct {
	SessionID string       `json:"sessionId"`
	State     StateView    `json:"state"`
	Offers    []OfferView  `json:"offers"`
	Banner    string       `json:"banner,omitempty"`
	Render    *render.Node `json:"render"`
}

func RegisterOfferRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/cart")

	// POST /api/cart – open an upsell session for a host cart
	g.POST("", func(c echo.Context) error {
		var body struct {
			CartID string `json:"cartId"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.CartID == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "cartId is required"})
		}
		s := deps.Sessions.Create(body.CartID)
		return c.JSON(http.StatusCreated, echo.Map{"sessionId": s.ID})
	})

	// PUT /api/cart/:id/lines – replace the cart snapshot, triggers recompute
	g.PUT("/:id/lines", func(c echo.Context) error {
		var body struct {
			Lines []upsell.CartLine `json:"lines"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		s, ok := deps.Sessions.Get(c.Param("id"))
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown session"})
		}
		s.CartChanged(body.Lines)
		v := s.View()
		return c.JSON(http.StatusAccepted, echo.Map{"state": stateView(v)})
	})

	// GET /api/cart/:id/offers – current state, offers and render tree
	g.GET("/:id/offers", func(c echo.Context) error {
		start := time.Now()
		s, ok := deps.Sessions.Get(c.Param("id"))
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown session"})
		}
		v := s.View()
		resp := sessionResponse{
			SessionID: s.ID,
			State:     stateView(v),
			Offers:    offerViews(v, deps),
			Banner:    v.Banner,
			Render:    render.Widget(v, deps.Prices),
		}
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
		return c.JSON(http.StatusOK, resp)
	})

	// POST /api/cart/:id/add – single-attempt add-to-cart for an offer
	g.POST("/:id/add", func(c echo.Context) error {
		var body struct {
			VariantID string `json:"variantId"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.VariantID == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "variantId is required"})
		}
		s, ok := deps.Sessions.Get(c.Param("id"))
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown session"})
		}

		err := s.AddToCart(c.Request().Context(), body.VariantID)
		if err == nil {
			return c.JSON(http.StatusOK, echo.Map{"type": "success"})
		}
		if errors.Is(err, upsell.ErrAddInFlight) {
			return c.JSON(http.StatusConflict, echo.Map{"type": "error", "message": err.Error()})
		}
		var ue *upsell.UserError
		if errors.As(err, &ue) {
			// Host rejected the line; the banner is already up.
			return c.JSON(http.StatusOK, echo.Map{"type": "error", "message": ue.Message})
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"type": "error", "message": err.Error()})
	})

	// DELETE /api/cart/:id – tear the session down
	g.DELETE("/:id", func(c echo.Context) error {
		deps.Sessions.Remove(c.Param("id"))
		return c.NoContent(http.StatusNoContent)
	})
}

func stateView(v upsell.View) StateView {
	return StateView{Fetch: v.Fetch.String(), Add: v.Add.String()}
}

func offerViews(v upsell.View, deps *api.Deps) []OfferView {
	out := make([]OfferView, 0, len(v.Offers))
	for _, o := range v.Offers {
		out = append(out, OfferView{
			ID:       o.ID,
			Title:    o.Title,
			ImageURL: o.ImageURL,
			Variant:  o.Variant.ID,
			Price: PriceView{
				Amount:       o.Variant.Price.Amount,
				CurrencyCode: o.Variant.Price.CurrencyCode,
				Formatted:    deps.Prices.Format(o.Variant.Price.Amount, o.Variant.Price.CurrencyCode),
			},
		})
	}
	return out
}

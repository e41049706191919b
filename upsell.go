//go:build !cli
// +build !cli

package main

import (
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"upsell.GO/api"
	graphqlApi "upsell.GO/api/graphql"
	_ "upsell.GO/api/offers"
	"upsell.GO/cart"
	"upsell.GO/config"
	"upsell.GO/core/auth"
	"upsell.GO/cron"
	_ "upsell.GO/custom"
	"upsell.GO/localization"
	"upsell.GO/storefront"
	"upsell.GO/upsell"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()
	cfg := config.AppConfig

	// Initialize Redis
	config.InitRedis()
	redisStatus := "Redis not configured or not reachable, caching disabled."
	if config.RedisClient != nil {
		err := config.RedisClient.Ping(config.RedisCtx()).Err()
		if err == nil {
			redisStatus = "Redis connection successful."
		} else {
			config.RedisClient = nil // Disable Redis if not reachable
			redisStatus = "Redis configured but not reachable, caching disabled."
		}
	}
	log.Println(redisStatus)

	sf := config.GetStorefront()
	client := storefront.NewClient(sf.Endpoint, sf.Token)
	catalog := storefront.NewCachedCatalog(storefront.NewCatalog(client), config.RedisClient, cfg.CatalogCacheTTL)
	mutator := storefront.NewCartMutations(client)

	selector := upsell.NewSelector(catalog)
	selector.MaxOffers = cfg.MaxOffers
	selector.CandidateLimit = cfg.CandidateLimit
	selector.CollectionsPerProduct = cfg.CollectionsPerProduct

	sessions := cart.NewStore(selector, mutator, cfg.SessionTTL, cfg.BannerTTL)
	cart.SetDefault(sessions)

	deps := &api.Deps{
		Sessions: sessions,
		Selector: selector,
		Mutator:  mutator,
		Prices:   localization.NewFormatter(cfg.Locale),
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			log.Printf("Request duration: %d ms", duration)
			return err
		}
	})

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware())
	api.ApplyModules(apiGroup, deps)

	graphqlApi.RegisterGraphQLRoutes(e, deps)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api.ApplyRoutes(e, deps)

	// ASCII banner on start (random font each run)
	fonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "doom", "larry3d", "puffy", "rectangles"}
	fig := figure.NewFigure("Upsell ->", fonts[rand.Intn(len(fonts))], true)
	fig.Print()

	c := cron.StartCron()
	defer c.Stop()

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on :%s", port)
	e.Logger.Fatal(e.Start(":" + port))
}

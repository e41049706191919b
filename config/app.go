package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName string
	Port    string
	Env     string
	Debug   bool
	Locale  string

	// Upsell pipeline knobs
	MaxOffers             int           // offers rendered, hard cap
	CandidateLimit        int           // catalog search page size
	CollectionsPerProduct int           // collection handles fetched per cart product
	SessionTTL            time.Duration // idle cart sessions are swept after this
	BannerTTL             time.Duration // add-to-cart error banner auto-dismiss
	CatalogCacheTTL       time.Duration // collection/candidate lookup cache
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:               os.Getenv("APP_NAME"),
			Port:                  os.Getenv("PORT"),
			Env:                   os.Getenv("APP_ENV"),
			Debug:                 os.Getenv("DEBUG") == "true",
			Locale:                GetEnv("UPSELL_LOCALE", "en-US"),
			MaxOffers:             envInt("UPSELL_MAX_OFFERS", 3),
			CandidateLimit:        envInt("UPSELL_CANDIDATE_LIMIT", 10),
			CollectionsPerProduct: envInt("UPSELL_COLLECTIONS_PER_PRODUCT", 5),
			SessionTTL:            envDuration("UPSELL_SESSION_TTL", 30*time.Minute),
			BannerTTL:             envDuration("UPSELL_BANNER_TTL", 3*time.Second),
			CatalogCacheTTL:       envDuration("UPSELL_CATALOG_CACHE_TTL", 5*time.Minute),
		}
	})
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

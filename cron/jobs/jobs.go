package jobs

import (
	"log"
	"time"

	"upsell.GO/cart"
	"upsell.GO/storefront"
)

// SessionSweep closes upsell sessions idle past the store TTL.
func SessionSweep(args ...string) {
	st := cart.Default()
	if st == nil {
		return
	}
	if n := st.Sweep(time.Now()); n > 0 {
		log.Printf("cron: swept %d idle upsell sessions, %d remain", n, st.Len())
	}
}

// CatalogFlush drops the in-process catalog cache so handle/candidate
// lookups pick up merchandising changes (Redis entries expire via TTL).
func CatalogFlush(args ...string) {
	storefront.FlushLocal()
	log.Println("cron: catalog cache flushed")
}

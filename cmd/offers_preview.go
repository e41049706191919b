package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"upsell.GO/config"
	"upsell.GO/localization"
	"upsell.GO/storefront"
	"upsell.GO/upsell"
)

var (
	previewCartFile string
	previewTimeout  time.Duration
)

var previewCmd = &cobra.Command{
	Use:   "offers:preview",
	Short: "Run the selection pipeline once for a cart JSON file and print the offers",
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(previewCartFile)
		if err != nil {
			fmt.Printf("Failed to read cart file: %v\n", err)
			os.Exit(1)
		}
		var lines []upsell.CartLine
		if err := json.Unmarshal(data, &lines); err != nil {
			fmt.Printf("Bad cart JSON: %v\n", err)
			os.Exit(1)
		}

		config.LoadAppConfig()
		cfg := config.AppConfig
		sf := config.GetStorefront()
		client := storefront.NewClient(sf.Endpoint, sf.Token)

		selector := upsell.NewSelector(storefront.NewCatalog(client))
		selector.MaxOffers = cfg.MaxOffers
		selector.CandidateLimit = cfg.CandidateLimit
		selector.CollectionsPerProduct = cfg.CollectionsPerProduct

		ctx, cancel := context.WithTimeout(context.Background(), previewTimeout)
		defer cancel()

		offers, err := selector.SelectOffers(ctx, lines)
		if err != nil {
			fmt.Printf("Selection failed: %v\n", err)
			os.Exit(1)
		}
		if len(offers) == 0 {
			fmt.Println("No eligible offers.")
			return
		}

		prices := localization.NewFormatter(cfg.Locale)
		for i, o := range offers {
			fmt.Printf("%d. %s (%s): %s\n", i+1, o.Title, o.Variant.ID,
				prices.Format(o.Variant.Price.Amount, o.Variant.Price.CurrencyCode))
		}
	},
}

func init() {
	previewCmd.Flags().StringVarP(&previewCartFile, "cart", "c", "cart.json", "Path to a JSON array of cart lines")
	previewCmd.Flags().DurationVar(&previewTimeout, "timeout", 30*time.Second, "Overall pipeline timeout")
	rootCmd.AddCommand(previewCmd)
}

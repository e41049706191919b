package config

import "os"

// Storefront holds the hosted catalog API connection settings.
type Storefront struct {
	Endpoint string // Storefront GraphQL endpoint
	Token    string // public access token, sent as a header
}

// GetStorefront reads the storefront settings from env.
func GetStorefront() Storefront {
	return Storefront{
		Endpoint: GetEnv("STOREFRONT_ENDPOINT", "http://localhost:8081/graphql"),
		Token:    os.Getenv("STOREFRONT_TOKEN"),
	}
}

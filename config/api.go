package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// The widget frontend talks to /graphql unauthenticated; /api is keyed.
	return []string{"/graphql", "/playground", "/healthz"}
}

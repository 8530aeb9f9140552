package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Read-only surfaces (alert dashboard, GraphQL queries) are public
	return []string{"/graphql", "/dashboard/alerts"}
}

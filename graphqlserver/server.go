package graphqlserver

import (
	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"stocknet.GO/graphql"
	"stocknet.GO/graphql/resolvers"
)

// RootResolver is the root for graphql-go. All Query fields resolve on the
// resolvers.QueryResolver.
type RootResolver struct {
	*resolvers.QueryResolver
}

// NewSchema parses the schema (base + registered extensions) and returns a
// graphql-go Schema bound to the given DB.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	root := &RootResolver{QueryResolver: resolvers.NewResolver(db)}
	return gql.ParseSchema(graphql.Schema(), root, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}

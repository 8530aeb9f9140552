package resolvers

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	gqlregistry "stocknet.GO/graphql/registry"
)

// QueryResolver is the single resolver for all Query fields. Methods live in
// inventory.go, alert.go, replenishment.go and transfer.go. New Query fields:
// use RegisterSchemaExtension + add a method here, or use _extension for
// fully dynamic resolvers.
type QueryResolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *QueryResolver {
	return &QueryResolver{db: db}
}

// Extension dispatches to registered custom resolvers.
func (r *QueryResolver) Extension(ctx context.Context, args struct {
	Name string
	Args *string
}) (*string, error) {
	m := make(map[string]interface{})
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	out, err := gqlregistry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, _ := json.Marshal(out)
	s := string(b)
	return &s, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

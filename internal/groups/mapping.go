package groups

import (
	"net/url"

	"github.com/stahlwerk/meltplan/pkg/query"
	"github.com/stahlwerk/meltplan/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "product_groups", "g").
	Project("id", "ID").
	Project("name", "Name").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{Field: "Name"}

// Filters contains optional filtering criteria for product group queries.
// Nil fields are ignored. Name uses case-insensitive contains matching.
type Filters struct {
	Name *string `json:"name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereContains("Name", f.Name)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	return f
}

func scanGroup(s repository.Scanner) (ProductGroup, error) {
	var g ProductGroup
	err := s.Scan(&g.ID, &g.Name, &g.CreatedAt)
	return g, err
}

package grades

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/stahlwerk/meltplan/pkg/query"
	"github.com/stahlwerk/meltplan/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "steel_grades", "s").
	Project("id", "ID").
	Project("name", "Name").
	Project("product_group_id", "ProductGroupID").
	Project("created_at", "CreatedAt").
	Join("public", "product_groups", "g", "INNER JOIN", "g.id = s.product_group_id").
	Project("name", "ProductGroup")

var defaultSort = query.SortField{Field: "Name"}

// Filters contains optional filtering criteria for steel grade queries.
// Nil fields are ignored.
type Filters struct {
	Name           *string    `json:"name,omitempty"`
	ProductGroupID *uuid.UUID `json:"product_group_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereContains("Name", f.Name)
	b.WhereEquals("ProductGroupID", f.ProductGroupID)
	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if g := values.Get("group_id"); g != "" {
		if id, err := uuid.Parse(g); err == nil {
			f.ProductGroupID = &id
		}
	}

	return f
}

func scanGrade(s repository.Scanner) (SteelGrade, error) {
	var g SteelGrade
	err := s.Scan(&g.ID, &g.Name, &g.ProductGroupID, &g.CreatedAt, &g.ProductGroup)
	return g, err
}

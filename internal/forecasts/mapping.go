package forecasts

import (
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/stahlwerk/meltplan/pkg/formatting"
	"github.com/stahlwerk/meltplan/pkg/query"
	"github.com/stahlwerk/meltplan/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "monthly_forecasts", "m").
	Project("id", "ID").
	Project("product_group_id", "ProductGroupID").
	Project("month", "Month").
	Project("heats", "Heats").
	Project("created_at", "CreatedAt").
	Join("public", "product_groups", "g", "INNER JOIN", "g.id = m.product_group_id").
	Project("name", "ProductGroup")

var defaultSort = []query.SortField{
	{Field: "Month", Descending: true},
	{Field: "ProductGroup"},
}

// Filters contains optional filtering criteria for monthly forecast queries.
// Nil fields are ignored. Month matches the first day of the given month.
type Filters struct {
	ProductGroupID *uuid.UUID `json:"product_group_id,omitempty"`
	Month          *time.Time `json:"month,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereEquals("ProductGroupID", f.ProductGroupID)
	if f.Month != nil {
		b.WhereEquals("Month", formatting.MonthStart(*f.Month))
	}
	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
// The month parameter accepts labels such as "Jun 24" or "2024-06".
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if g := values.Get("group_id"); g != "" {
		if id, err := uuid.Parse(g); err == nil {
			f.ProductGroupID = &id
		}
	}

	if m := values.Get("month"); m != "" {
		if month, err := formatting.ParseMonthLabel(m); err == nil {
			f.Month = &month
		}
	}

	return f
}

func scanForecast(s repository.Scanner) (MonthlyForecast, error) {
	var f MonthlyForecast
	err := s.Scan(&f.ID, &f.ProductGroupID, &f.Month, &f.Heats, &f.CreatedAt, &f.ProductGroup)
	return f, err
}

package history

import (
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/stahlwerk/meltplan/pkg/formatting"
	"github.com/stahlwerk/meltplan/pkg/query"
	"github.com/stahlwerk/meltplan/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "production_history", "h").
	Project("id", "ID").
	Project("steel_grade_id", "SteelGradeID").
	Project("month", "Month").
	Project("tons", "Tons").
	Project("created_at", "CreatedAt").
	Join("public", "steel_grades", "s", "INNER JOIN", "s.id = h.steel_grade_id").
	Project("name", "Grade").
	Join("public", "product_groups", "g", "INNER JOIN", "g.id = s.product_group_id").
	Project("name", "ProductGroup")

var defaultSort = []query.SortField{
	{Field: "Month", Descending: true},
	{Field: "Grade"},
}

// Filters contains optional filtering criteria for production history queries.
// Nil fields are ignored. Month matches the first day of the given month.
type Filters struct {
	SteelGradeID   *uuid.UUID `json:"steel_grade_id,omitempty"`
	ProductGroupID *uuid.UUID `json:"product_group_id,omitempty"`
	Month          *time.Time `json:"month,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereEquals("SteelGradeID", f.SteelGradeID)
	b.WhereEquals("s.product_group_id", f.ProductGroupID)
	if f.Month != nil {
		b.WhereEquals("Month", formatting.MonthStart(*f.Month))
	}
	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
// The month parameter accepts labels such as "Jun 24" or "2024-06".
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if g := values.Get("grade_id"); g != "" {
		if id, err := uuid.Parse(g); err == nil {
			f.SteelGradeID = &id
		}
	}

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

func scanRecord(s repository.Scanner) (ProductionRecord, error) {
	var rec ProductionRecord
	err := s.Scan(&rec.ID, &rec.SteelGradeID, &rec.Month, &rec.Tons, &rec.CreatedAt, &rec.Grade, &rec.ProductGroup)
	return rec, err
}

package schedules

import (
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/stahlwerk/meltplan/pkg/query"
	"github.com/stahlwerk/meltplan/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "daily_schedules", "d").
	Project("id", "ID").
	Project("date", "Date").
	Project("start_time", "StartTime").
	Project("steel_grade_id", "SteelGradeID").
	Project("mould_size", "MouldSize").
	Project("created_at", "CreatedAt").
	Join("public", "steel_grades", "s", "INNER JOIN", "s.id = d.steel_grade_id").
	Project("name", "Grade").
	Join("public", "product_groups", "g", "INNER JOIN", "g.id = s.product_group_id").
	Project("name", "ProductGroup")

var defaultSort = []query.SortField{
	{Field: "Date"},
	{Field: "StartTime"},
}

// Filters contains optional filtering criteria for schedule queries.
// Nil fields are ignored.
type Filters struct {
	Date         *time.Time `json:"date,omitempty"`
	SteelGradeID *uuid.UUID `json:"steel_grade_id,omitempty"`
	Grade        *string    `json:"grade,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereEquals("Date", f.Date)
	b.WhereEquals("SteelGradeID", f.SteelGradeID)
	b.WhereContains("Grade", f.Grade)
	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
// The date parameter uses ISO format (2024-08-30).
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if d := values.Get("date"); d != "" {
		if date, err := time.Parse("2006-01-02", d); err == nil {
			f.Date = &date
		}
	}

	if g := values.Get("grade_id"); g != "" {
		if id, err := uuid.Parse(g); err == nil {
			f.SteelGradeID = &id
		}
	}

	if g := values.Get("grade"); g != "" {
		f.Grade = &g
	}

	return f
}

func scanEntry(s repository.Scanner) (ScheduleEntry, error) {
	var e ScheduleEntry
	err := s.Scan(&e.ID, &e.Date, &e.StartTime, &e.SteelGradeID, &e.MouldSize, &e.CreatedAt, &e.Grade, &e.ProductGroup)
	return e, err
}

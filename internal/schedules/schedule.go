// Package schedules implements the daily casting schedule domain for meltplan.
// A schedule entry is a single planned cast: a date, start time, steel grade,
// and optional mould size taken from the caster planning workbook.
package schedules

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleEntry represents one planned cast on the daily schedule.
type ScheduleEntry struct {
	ID           uuid.UUID `json:"id"`
	Date         time.Time `json:"date"`
	StartTime    string    `json:"start_time"`
	SteelGradeID uuid.UUID `json:"steel_grade_id"`
	Grade        string    `json:"grade"`
	ProductGroup string    `json:"product_group"`
	MouldSize    *string   `json:"mould_size,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

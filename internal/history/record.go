// Package history implements the production history domain for meltplan.
// Production history records actual monthly tonnage produced per steel grade
// and provides the distribution ratios used by the forecast engine.
package history

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductionRecord represents actual tonnage produced for a grade in a month.
type ProductionRecord struct {
	ID           uuid.UUID       `json:"id"`
	SteelGradeID uuid.UUID       `json:"steel_grade_id"`
	Grade        string          `json:"grade"`
	ProductGroup string          `json:"product_group"`
	Month        time.Time       `json:"month"`
	Tons         decimal.Decimal `json:"tons"`
	CreatedAt    time.Time       `json:"created_at"`
}

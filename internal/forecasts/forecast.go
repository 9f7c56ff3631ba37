// Package forecasts implements the monthly forecast domain for meltplan.
// It stores coarse product group heat targets ingested from the monthly
// forecast workbook and computes the redistribution of those targets down
// to individual steel grades using historical production ratios.
package forecasts

import (
	"time"

	"github.com/google/uuid"
)

// MonthlyForecast represents a stored product group heat target for a month.
type MonthlyForecast struct {
	ID             uuid.UUID `json:"id"`
	ProductGroupID uuid.UUID `json:"product_group_id"`
	ProductGroup   string    `json:"product_group"`
	Month          time.Time `json:"month"`
	Heats          int       `json:"heats"`
	CreatedAt      time.Time `json:"created_at"`
}

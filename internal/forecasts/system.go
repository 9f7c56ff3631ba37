package forecasts

import (
	"context"
	"time"

	"github.com/stahlwerk/meltplan/pkg/pagination"
)

// System defines the public contract for forecast domain operations.
// Stored targets are written exclusively through workbook ingestion; the
// system exposes target queries and the computed grade-level forecast.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[MonthlyForecast], error)

	Compute(ctx context.Context, year int, month time.Month) (*Forecast, error)
}

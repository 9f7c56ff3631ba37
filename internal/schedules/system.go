package schedules

import (
	"context"

	"github.com/stahlwerk/meltplan/pkg/pagination"
)

// System defines the public contract for daily schedule operations.
// Schedule entries are written exclusively through workbook ingestion, so
// the system exposes read operations only.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[ScheduleEntry], error)
}

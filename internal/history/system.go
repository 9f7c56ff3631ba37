package history

import (
	"context"

	"github.com/stahlwerk/meltplan/pkg/pagination"
)

// System defines the public contract for production history operations.
// History records are written exclusively through workbook ingestion, so
// the system exposes read operations only.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[ProductionRecord], error)
}

package grades

import (
	"context"

	"github.com/google/uuid"

	"github.com/stahlwerk/meltplan/pkg/pagination"
)

// System defines the public contract for steel grade domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[SteelGrade], error)

	Find(ctx context.Context, id uuid.UUID) (*SteelGrade, error)
	Create(ctx context.Context, cmd CreateCommand) (*SteelGrade, error)
}

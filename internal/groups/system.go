package groups

import (
	"context"

	"github.com/google/uuid"

	"github.com/stahlwerk/meltplan/pkg/pagination"
)

// System defines the public contract for product group domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[ProductGroup], error)

	Find(ctx context.Context, id uuid.UUID) (*ProductGroup, error)
	Create(ctx context.Context, cmd CreateCommand) (*ProductGroup, error)
}

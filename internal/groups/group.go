// Package groups implements the product group domain for meltplan.
// A product group is a coarse steel classification (e.g. Rebar) that owns
// a set of steel grades and receives monthly heat forecasts.
package groups

import (
	"time"

	"github.com/google/uuid"
)

// ProductGroup represents a coarse steel classification.
type ProductGroup struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommand carries the data needed to register a new product group.
type CreateCommand struct {
	Name string `json:"name"`
}

// Package grades implements the steel grade domain for meltplan.
// A steel grade is a specific steel chemistry (e.g. B500B) belonging to
// exactly one product group; forecast heats are redistributed to grades.
package grades

import (
	"time"

	"github.com/google/uuid"
)

// SteelGrade represents a specific steel chemistry within a product group.
type SteelGrade struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	ProductGroupID uuid.UUID `json:"product_group_id"`
	ProductGroup   string    `json:"product_group"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateCommand carries the data needed to register a new steel grade.
type CreateCommand struct {
	Name           string    `json:"name"`
	ProductGroupID uuid.UUID `json:"product_group_id"`
}

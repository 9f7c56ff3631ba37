package forecasts

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// GradeTons pairs a steel grade with its aggregated historical tonnage.
type GradeTons struct {
	Grade string
	Tons  decimal.Decimal
}

// Allocation is the number of heats assigned to a single steel grade.
type Allocation struct {
	Grade string `json:"grade"`
	Heats int    `json:"heats"`
}

// Allocate distributes a product group's target heat count across its grades
// proportionally to each grade's share of the group's historical tonnage.
//
// Heats are integers, so proportional shares are floored and the rounding
// residual is awarded one heat at a time to the grades with the largest
// fractional remainder, ties broken by grade name ascending. The returned
// allocations always include every input grade, are ordered by grade name
// ascending, and sum exactly to targetHeats.
//
// When the group has no recorded history at all, the target is split evenly
// across all grades with the remainder going to the alphabetically first
// grades.
func Allocate(targetHeats int, history []GradeTons) ([]Allocation, error) {
	if targetHeats < 0 {
		return nil, fmt.Errorf("%w: target heats %d is negative", ErrInvalidInput, targetHeats)
	}
	if len(history) == 0 {
		return nil, ErrEmptyGroup
	}

	grades := make([]GradeTons, len(history))
	copy(grades, history)
	slices.SortFunc(grades, func(a, b GradeTons) int {
		return strings.Compare(a.Grade, b.Grade)
	})

	total := decimal.Zero
	for _, g := range grades {
		if g.Tons.IsNegative() {
			return nil, fmt.Errorf("%w: grade %s has negative tonnage %s", ErrInvalidInput, g.Grade, g.Tons)
		}
		total = total.Add(g.Tons)
	}

	if total.IsZero() {
		return evenSplit(targetHeats, grades), nil
	}

	target := decimal.NewFromInt(int64(targetHeats))

	allocations := make([]Allocation, len(grades))
	remainders := make([]decimal.Decimal, len(grades))
	assigned := 0

	for i, g := range grades {
		raw := g.Tons.Mul(target).Div(total)
		floor := raw.Floor()

		allocations[i] = Allocation{Grade: g.Grade, Heats: int(floor.IntPart())}
		remainders[i] = raw.Sub(floor)
		assigned += allocations[i].Heats
	}

	distributeResidual(allocations, remainders, targetHeats-assigned)
	return allocations, nil
}

// evenSplit divides the target equally across all grades. The remainder goes
// to the alphabetically first grades; the input is already name-sorted.
func evenSplit(targetHeats int, grades []GradeTons) []Allocation {
	base := targetHeats / len(grades)
	remainder := targetHeats % len(grades)

	allocations := make([]Allocation, len(grades))
	for i, g := range grades {
		heats := base
		if i < remainder {
			heats++
		}
		allocations[i] = Allocation{Grade: g.Grade, Heats: heats}
	}

	return allocations
}

// distributeResidual awards one heat per grade in descending fractional
// remainder order until the rounding residual is exhausted. Allocations are
// name-sorted, so equal remainders resolve alphabetically.
func distributeResidual(allocations []Allocation, remainders []decimal.Decimal, residual int) {
	if residual <= 0 {
		return
	}

	order := make([]int, len(allocations))
	for i := range order {
		order[i] = i
	}

	slices.SortStableFunc(order, func(a, b int) int {
		return remainders[b].Cmp(remainders[a])
	})

	for i := 0; i < residual && i < len(order); i++ {
		allocations[order[i]].Heats++
	}
}

package forecasts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/stahlwerk/meltplan/pkg/formatting"
)

// GroupTarget is a product group's forecast heat count for a single month.
type GroupTarget struct {
	GroupID   uuid.UUID
	GroupName string
	Heats     int
}

// Source provides the stored data the assembler computes against.
// It is injected rather than reached for globally so the assembler and
// engine stay pure and testable against fakes.
type Source interface {
	// MonthlyTargets returns all product group targets for the given month,
	// ordered by product group definition order.
	MonthlyTargets(ctx context.Context, month time.Time) ([]GroupTarget, error)

	// GradeTonnage returns every grade in the group paired with its tonnage
	// aggregated across all recorded history months, ordered by grade name.
	// Grades without history records are included with zero tons.
	GradeTonnage(ctx context.Context, groupID uuid.UUID) ([]GradeTons, error)
}

// GradeForecast is one computed allocation row in a monthly forecast.
type GradeForecast struct {
	Grade        string `json:"grade"`
	ProductGroup string `json:"product_group"`
	Heats        int    `json:"heats"`
}

// Forecast is the computed heat redistribution for a single month.
type Forecast struct {
	Month     string          `json:"month"`
	Forecasts []GradeForecast `json:"forecasts"`
}

// Compute builds the full forecast for a month by running the allocation
// engine across every product group with a stored target. Group tonnage
// loads fan out concurrently; results keep target order, so identical
// stored data always yields an identical forecast. Any group failure aborts
// the whole computation rather than returning a partial forecast.
func Compute(ctx context.Context, src Source, year int, month time.Month) (*Forecast, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d out of range", ErrInvalidInput, month)
	}
	if year < 1 {
		return nil, fmt.Errorf("%w: year %d out of range", ErrInvalidInput, year)
	}

	label := formatting.MonthLabel(year, month)
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	targets, err := src.MonthlyTargets(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("load monthly targets: %w", err)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoForecastData, label)
	}

	eg, ctx := errgroup.WithContext(ctx)
	results := make([][]GradeForecast, len(targets))

	for i, target := range targets {
		eg.Go(func() error {
			tonnage, err := src.GradeTonnage(ctx, target.GroupID)
			if err != nil {
				return fmt.Errorf("load tonnage for group %s: %w", target.GroupName, err)
			}

			allocations, err := Allocate(target.Heats, tonnage)
			if err != nil {
				return fmt.Errorf("allocate group %s: %w", target.GroupName, err)
			}

			rows := make([]GradeForecast, len(allocations))
			for j, a := range allocations {
				rows[j] = GradeForecast{
					Grade:        a.Grade,
					ProductGroup: target.GroupName,
					Heats:        a.Heats,
				}
			}

			results[i] = rows
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	forecast := &Forecast{Month: label, Forecasts: make([]GradeForecast, 0)}
	for _, rows := range results {
		forecast.Forecasts = append(forecast.Forecasts, rows...)
	}

	return forecast, nil
}

package forecasts_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/stahlwerk/meltplan/internal/forecasts"
)

func tons(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func TestAllocateProportional(t *testing.T) {
	history := []forecasts.GradeTons{
		{Grade: "A", Tons: tons(300)},
		{Grade: "B", Tons: tons(100)},
	}

	got, err := forecasts.Allocate(40, history)
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}

	want := []forecasts.Allocation{
		{Grade: "A", Heats: 30},
		{Grade: "B", Heats: 10},
	}

	assertAllocations(t, got, want)
}

func TestAllocateRoundingResidual(t *testing.T) {
	history := []forecasts.GradeTons{
		{Grade: "A", Tons: tons(1)},
		{Grade: "B", Tons: tons(1)},
		{Grade: "C", Tons: tons(1)},
	}

	got, err := forecasts.Allocate(10, history)
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}

	// Equal remainders resolve alphabetically, so A takes the extra heat.
	want := []forecasts.Allocation{
		{Grade: "A", Heats: 4},
		{Grade: "B", Heats: 3},
		{Grade: "C", Heats: 3},
	}

	assertAllocations(t, got, want)
}

func TestAllocateEvenSplitFallback(t *testing.T) {
	history := []forecasts.GradeTons{
		{Grade: "B500C", Tons: tons(0)},
		{Grade: "B500A", Tons: tons(0)},
		{Grade: "B500B", Tons: tons(0)},
	}

	got, err := forecasts.Allocate(10, history)
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}

	want := []forecasts.Allocation{
		{Grade: "B500A", Heats: 4},
		{Grade: "B500B", Heats: 3},
		{Grade: "B500C", Heats: 3},
	}

	assertAllocations(t, got, want)
}

func TestAllocateZeroShareGrade(t *testing.T) {
	history := []forecasts.GradeTons{
		{Grade: "A", Tons: tons(100)},
		{Grade: "B", Tons: tons(0)},
	}

	got, err := forecasts.Allocate(10, history)
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}

	// Zero-history grades stay in the output at zero heats.
	want := []forecasts.Allocation{
		{Grade: "A", Heats: 10},
		{Grade: "B", Heats: 0},
	}

	assertAllocations(t, got, want)
}

func TestAllocateSumInvariant(t *testing.T) {
	tests := []struct {
		name    string
		target  int
		history []forecasts.GradeTons
	}{
		{
			"uneven shares",
			17,
			[]forecasts.GradeTons{
				{Grade: "A", Tons: tons(123)},
				{Grade: "B", Tons: tons(456)},
				{Grade: "C", Tons: tons(789)},
			},
		},
		{
			"fractional tonnage",
			31,
			[]forecasts.GradeTons{
				{Grade: "A", Tons: decimal.RequireFromString("1050.375")},
				{Grade: "B", Tons: decimal.RequireFromString("220.5")},
				{Grade: "C", Tons: decimal.RequireFromString("0.125")},
			},
		},
		{
			"zero target",
			0,
			[]forecasts.GradeTons{
				{Grade: "A", Tons: tons(10)},
				{Grade: "B", Tons: tons(20)},
			},
		},
		{
			"single grade",
			7,
			[]forecasts.GradeTons{{Grade: "A", Tons: tons(5)}},
		},
		{
			"no history even split",
			11,
			[]forecasts.GradeTons{
				{Grade: "A", Tons: tons(0)},
				{Grade: "B", Tons: tons(0)},
				{Grade: "C", Tons: tons(0)},
				{Grade: "D", Tons: tons(0)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := forecasts.Allocate(tt.target, tt.history)
			if err != nil {
				t.Fatalf("Allocate() error = %v", err)
			}

			if len(got) != len(tt.history) {
				t.Fatalf("allocation count = %d, want %d", len(got), len(tt.history))
			}

			sum := 0
			for _, a := range got {
				if a.Heats < 0 {
					t.Errorf("grade %s allocated negative heats %d", a.Grade, a.Heats)
				}
				sum += a.Heats
			}

			if sum != tt.target {
				t.Errorf("allocated sum = %d, want %d", sum, tt.target)
			}
		})
	}
}

func TestAllocateOrdersByGradeName(t *testing.T) {
	history := []forecasts.GradeTons{
		{Grade: "GR50", Tons: tons(50)},
		{Grade: "44W", Tons: tons(100)},
		{Grade: "A36", Tons: tons(75)},
	}

	got, err := forecasts.Allocate(9, history)
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}

	wantOrder := []string{"44W", "A36", "GR50"}
	for i, name := range wantOrder {
		if got[i].Grade != name {
			t.Errorf("allocation[%d].Grade = %s, want %s", i, got[i].Grade, name)
		}
	}
}

func TestAllocateErrors(t *testing.T) {
	tests := []struct {
		name    string
		target  int
		history []forecasts.GradeTons
		wantErr error
	}{
		{"negative target", -1, []forecasts.GradeTons{{Grade: "A", Tons: tons(1)}}, forecasts.ErrInvalidInput},
		{"no grades", 10, nil, forecasts.ErrEmptyGroup},
		{"negative tonnage", 10, []forecasts.GradeTons{{Grade: "A", Tons: tons(-5)}}, forecasts.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := forecasts.Allocate(tt.target, tt.history)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Allocate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func assertAllocations(t *testing.T, got, want []forecasts.Allocation) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("allocation count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("allocation[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

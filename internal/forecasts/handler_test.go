package forecasts_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stahlwerk/meltplan/internal/forecasts"
	"github.com/stahlwerk/meltplan/pkg/pagination"
)

type mockSystem struct {
	listFn    func(ctx context.Context, page pagination.PageRequest, filters forecasts.Filters) (*pagination.PageResult[forecasts.MonthlyForecast], error)
	computeFn func(ctx context.Context, year int, month time.Month) (*forecasts.Forecast, error)
}

func (m *mockSystem) Handler() *forecasts.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters forecasts.Filters) (*pagination.PageResult[forecasts.MonthlyForecast], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Compute(ctx context.Context, year int, month time.Month) (*forecasts.Forecast, error) {
	return m.computeFn(ctx, year, month)
}

func newTestHandler(sys forecasts.System) *forecasts.Handler {
	return forecasts.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
}

func setupMux(h *forecasts.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func TestHandlerCompute(t *testing.T) {
	sys := &mockSystem{
		computeFn: func(_ context.Context, year int, month time.Month) (*forecasts.Forecast, error) {
			if year != 2024 || month != time.September {
				t.Fatalf("Compute(%d, %d), want (2024, 9)", year, month)
			}
			return &forecasts.Forecast{
				Month: "September 2024",
				Forecasts: []forecasts.GradeForecast{
					{Grade: "B500A", ProductGroup: "Rebar", Heats: 30},
				},
			}, nil
		},
	}

	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/forecasts/2024/9", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result forecasts.Forecast
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if result.Month != "September 2024" {
		t.Errorf("Month = %q, want %q", result.Month, "September 2024")
	}
	if len(result.Forecasts) != 1 || result.Forecasts[0].Heats != 30 {
		t.Errorf("Forecasts = %+v", result.Forecasts)
	}
}

func TestHandlerComputeErrors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		computeErr error
		wantStatus int
	}{
		{"no forecast data", "/forecasts/2025/1", forecasts.ErrNoForecastData, http.StatusNotFound},
		{"empty group", "/forecasts/2024/9", forecasts.ErrEmptyGroup, http.StatusConflict},
		{"invalid month value", "/forecasts/2024/13", forecasts.ErrInvalidInput, http.StatusBadRequest},
		{"non-numeric year", "/forecasts/abcd/9", nil, http.StatusBadRequest},
		{"non-numeric month", "/forecasts/2024/sep", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{
				computeFn: func(_ context.Context, _ int, _ time.Month) (*forecasts.Forecast, error) {
					return nil, tt.computeErr
				},
			}

			mux := setupMux(newTestHandler(sys))

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", tt.path, nil)
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body["error"] == "" {
				t.Error("expected error message in body")
			}
		})
	}
}

func TestHandlerList(t *testing.T) {
	sys := &mockSystem{
		listFn: func(_ context.Context, page pagination.PageRequest, _ forecasts.Filters) (*pagination.PageResult[forecasts.MonthlyForecast], error) {
			result := pagination.NewPageResult([]forecasts.MonthlyForecast{
				{ProductGroup: "Rebar", Heats: 120},
			}, 1, page.Page, page.PageSize)
			return &result, nil
		},
	}

	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/forecasts?page=1&page_size=10", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result pagination.PageResult[forecasts.MonthlyForecast]
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if result.Total != 1 || len(result.Data) != 1 {
		t.Errorf("result = %+v, want single record", result)
	}
}

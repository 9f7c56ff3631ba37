package groups_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/stahlwerk/meltplan/internal/groups"
	"github.com/stahlwerk/meltplan/pkg/pagination"
)

type mockSystem struct {
	listFn   func(ctx context.Context, page pagination.PageRequest, filters groups.Filters) (*pagination.PageResult[groups.ProductGroup], error)
	findFn   func(ctx context.Context, id uuid.UUID) (*groups.ProductGroup, error)
	createFn func(ctx context.Context, cmd groups.CreateCommand) (*groups.ProductGroup, error)
}

func (m *mockSystem) Handler() *groups.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters groups.Filters) (*pagination.PageResult[groups.ProductGroup], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*groups.ProductGroup, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Create(ctx context.Context, cmd groups.CreateCommand) (*groups.ProductGroup, error) {
	return m.createFn(ctx, cmd)
}

func newTestHandler(sys groups.System) *groups.Handler {
	return groups.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
}

func setupMux(h *groups.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func TestHandlerList(t *testing.T) {
	sys := &mockSystem{
		listFn: func(_ context.Context, page pagination.PageRequest, _ groups.Filters) (*pagination.PageResult[groups.ProductGroup], error) {
			result := pagination.NewPageResult([]groups.ProductGroup{
				{ID: uuid.New(), Name: "Rebar"},
				{ID: uuid.New(), Name: "MBQ"},
			}, 2, page.Page, page.PageSize)
			return &result, nil
		},
	}

	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/groups", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result pagination.PageResult[groups.ProductGroup]
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if result.Total != 2 || len(result.Data) != 2 {
		t.Errorf("result = %+v, want two records", result)
	}
}

func TestHandlerFind(t *testing.T) {
	id := uuid.New()

	sys := &mockSystem{
		findFn: func(_ context.Context, got uuid.UUID) (*groups.ProductGroup, error) {
			if got != id {
				t.Fatalf("Find(%s), want %s", got, id)
			}
			return &groups.ProductGroup{ID: id, Name: "Rebar"}, nil
		},
	}

	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/groups/"+id.String(), nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var g groups.ProductGroup
	if err := json.NewDecoder(rec.Body).Decode(&g); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if g.Name != "Rebar" {
		t.Errorf("Name = %q, want %q", g.Name, "Rebar")
	}
}

func TestHandlerFindErrors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		findErr    error
		wantStatus int
	}{
		{"invalid uuid", "not-a-uuid", nil, http.StatusBadRequest},
		{"not found", uuid.NewString(), groups.ErrNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{
				findFn: func(_ context.Context, _ uuid.UUID) (*groups.ProductGroup, error) {
					return nil, tt.findErr
				},
			}

			mux := setupMux(newTestHandler(sys))

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/groups/"+tt.id, nil)
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestHandlerCreate(t *testing.T) {
	sys := &mockSystem{
		createFn: func(_ context.Context, cmd groups.CreateCommand) (*groups.ProductGroup, error) {
			if cmd.Name != "SBQ" {
				t.Fatalf("Create(%q), want %q", cmd.Name, "SBQ")
			}
			return &groups.ProductGroup{ID: uuid.New(), Name: cmd.Name}, nil
		},
	}

	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/groups", strings.NewReader(`{"name":"SBQ"}`))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var g groups.ProductGroup
	if err := json.NewDecoder(rec.Body).Decode(&g); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if g.Name != "SBQ" {
		t.Errorf("Name = %q, want %q", g.Name, "SBQ")
	}
}

func TestHandlerCreateErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		createErr  error
		wantStatus int
	}{
		{"duplicate name", `{"name":"Rebar"}`, groups.ErrDuplicate, http.StatusConflict},
		{"blank name", `{"name":"  "}`, groups.ErrInvalidName, http.StatusBadRequest},
		{"malformed body", `{`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{
				createFn: func(_ context.Context, _ groups.CreateCommand) (*groups.ProductGroup, error) {
					return nil, tt.createErr
				},
			}

			mux := setupMux(newTestHandler(sys))

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/groups", strings.NewReader(tt.body))
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

func TestHandlerSearch(t *testing.T) {
	sys := &mockSystem{
		listFn: func(_ context.Context, page pagination.PageRequest, filters groups.Filters) (*pagination.PageResult[groups.ProductGroup], error) {
			if filters.Name == nil || *filters.Name != "Rebar" {
				t.Fatalf("filters = %+v, want Name=Rebar", filters)
			}
			result := pagination.NewPageResult([]groups.ProductGroup{
				{ID: uuid.New(), Name: "Rebar"},
			}, 1, page.Page, page.PageSize)
			return &result, nil
		},
	}

	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/groups/search", strings.NewReader(`{"page":1,"page_size":10,"name":"Rebar"}`))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

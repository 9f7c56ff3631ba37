package uploads_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/stahlwerk/meltplan/internal/uploads"
	"github.com/stahlwerk/meltplan/pkg/pagination"
	"github.com/stahlwerk/meltplan/pkg/storage"
)

type mockSystem struct {
	listFn     func(ctx context.Context, page pagination.PageRequest, filters uploads.Filters) (*pagination.PageResult[uploads.Upload], error)
	findFn     func(ctx context.Context, id uuid.UUID) (*uploads.Upload, error)
	downloadFn func(ctx context.Context, id uuid.UUID) (*uploads.Upload, *storage.DownloadResult, error)
	ingestFn   func(ctx context.Context, kind uploads.Kind, cmd uploads.IngestCommand) (*uploads.Upload, error)
}

func (m *mockSystem) Handler(maxUploadSize int64) *uploads.Handler {
	return newTestHandler(m, maxUploadSize)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters uploads.Filters) (*pagination.PageResult[uploads.Upload], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*uploads.Upload, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Download(ctx context.Context, id uuid.UUID) (*uploads.Upload, *storage.DownloadResult, error) {
	return m.downloadFn(ctx, id)
}

func (m *mockSystem) Ingest(ctx context.Context, kind uploads.Kind, cmd uploads.IngestCommand) (*uploads.Upload, error) {
	return m.ingestFn(ctx, kind, cmd)
}

func newTestHandler(sys uploads.System, maxUploadSize int64) *uploads.Handler {
	return uploads.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		maxUploadSize,
	)
}

func setupMux(h *uploads.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

// multipartBody builds a multipart form with a single "file" part.
func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	return &buf, writer.FormDataContentType()
}

func TestHandlerIngest(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantKind uploads.Kind
	}{
		{"daily schedule", "/uploads/daily-schedule", uploads.KindDailySchedule},
		{"monthly forecast", "/uploads/monthly-forecast", uploads.KindMonthlyForecast},
		{"production history", "/uploads/production-history", uploads.KindProductionHistory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{
				ingestFn: func(_ context.Context, kind uploads.Kind, cmd uploads.IngestCommand) (*uploads.Upload, error) {
					if kind != tt.wantKind {
						t.Fatalf("Ingest kind = %s, want %s", kind, tt.wantKind)
					}
					if cmd.Filename != "plan.xlsx" {
						t.Fatalf("Filename = %q, want plan.xlsx", cmd.Filename)
					}
					if len(cmd.Data) == 0 {
						t.Fatal("expected file data")
					}
					return &uploads.Upload{
						ID:               uuid.New(),
						Kind:             kind,
						Filename:         cmd.Filename,
						RecordsProcessed: 12,
					}, nil
				},
			}

			mux := setupMux(newTestHandler(sys, 1<<20))

			body, contentType := multipartBody(t, "plan.xlsx", []byte("workbook bytes"))
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", tt.path, body)
			req.Header.Set("Content-Type", contentType)
			mux.ServeHTTP(rec, req)

			if rec.Code != http.StatusCreated {
				t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
			}

			var u uploads.Upload
			if err := json.NewDecoder(rec.Body).Decode(&u); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if u.RecordsProcessed != 12 {
				t.Errorf("RecordsProcessed = %d, want 12", u.RecordsProcessed)
			}
		})
	}
}

func TestHandlerIngestErrors(t *testing.T) {
	tests := []struct {
		name       string
		ingestErr  error
		wantStatus int
	}{
		{"invalid workbook", uploads.ErrInvalidWorkbook, http.StatusBadRequest},
		{"no records", uploads.ErrNoRecords, http.StatusBadRequest},
		{"file too large", uploads.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{
				ingestFn: func(_ context.Context, _ uploads.Kind, _ uploads.IngestCommand) (*uploads.Upload, error) {
					return nil, tt.ingestErr
				},
			}

			mux := setupMux(newTestHandler(sys, 1<<20))

			body, contentType := multipartBody(t, "plan.xlsx", []byte("workbook bytes"))
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/uploads/daily-schedule", body)
			req.Header.Set("Content-Type", contentType)
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var errBody map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&errBody); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if errBody["error"] == "" {
				t.Error("expected error message in body")
			}
		})
	}
}

func TestHandlerIngestMissingFile(t *testing.T) {
	sys := &mockSystem{
		ingestFn: func(_ context.Context, _ uploads.Kind, _ uploads.IngestCommand) (*uploads.Upload, error) {
			t.Fatal("Ingest should not be called")
			return nil, nil
		},
	}

	mux := setupMux(newTestHandler(sys, 1<<20))

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.WriteField("other", "value")
	writer.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/uploads/daily-schedule", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandlerDownload(t *testing.T) {
	id := uuid.New()
	content := "archived workbook"

	sys := &mockSystem{
		downloadFn: func(_ context.Context, got uuid.UUID) (*uploads.Upload, *storage.DownloadResult, error) {
			if got != id {
				t.Fatalf("Download(%s), want %s", got, id)
			}
			u := &uploads.Upload{ID: id, Filename: "plan.xlsx"}
			result := &storage.DownloadResult{
				Body:          io.NopCloser(strings.NewReader(content)),
				ContentType:   "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
				ContentLength: int64(len(content)),
			}
			return u, result, nil
		},
	}

	mux := setupMux(newTestHandler(sys, 1<<20))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/uploads/"+id.String()+"/download", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != content {
		t.Errorf("body = %q, want %q", rec.Body.String(), content)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "plan.xlsx") {
		t.Errorf("Content-Disposition = %q, want attachment with filename", cd)
	}
}

func TestHandlerDownloadErrors(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		downloadErr error
		wantStatus  int
	}{
		{"invalid uuid", "not-a-uuid", nil, http.StatusBadRequest},
		{"record not found", uuid.NewString(), uploads.ErrNotFound, http.StatusNotFound},
		{"blob not found", uuid.NewString(), storage.ErrNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{
				downloadFn: func(_ context.Context, _ uuid.UUID) (*uploads.Upload, *storage.DownloadResult, error) {
					return nil, nil, tt.downloadErr
				},
			}

			mux := setupMux(newTestHandler(sys, 1<<20))

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/uploads/"+tt.id+"/download", nil)
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestHandlerList(t *testing.T) {
	sys := &mockSystem{
		listFn: func(_ context.Context, page pagination.PageRequest, filters uploads.Filters) (*pagination.PageResult[uploads.Upload], error) {
			if filters.Kind == nil || *filters.Kind != uploads.KindDailySchedule {
				t.Fatalf("filters = %+v, want Kind=daily_schedule", filters)
			}
			result := pagination.NewPageResult([]uploads.Upload{
				{ID: uuid.New(), Kind: uploads.KindDailySchedule, Filename: "plan.xlsx"},
			}, 1, page.Page, page.PageSize)
			return &result, nil
		},
	}

	mux := setupMux(newTestHandler(sys, 1<<20))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/uploads?kind=daily_schedule", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result pagination.PageResult[uploads.Upload]
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Total != 1 || len(result.Data) != 1 {
		t.Errorf("result = %+v, want single record", result)
	}
}

func TestKindValid(t *testing.T) {
	tests := []struct {
		kind uploads.Kind
		want bool
	}{
		{uploads.KindDailySchedule, true},
		{uploads.KindMonthlyForecast, true},
		{uploads.KindProductionHistory, true},
		{uploads.Kind("quarterly_report"), false},
		{uploads.Kind(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

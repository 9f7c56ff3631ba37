// Package uploads implements workbook ingestion for meltplan.
// It parses the three plant spreadsheets (daily charge schedule, monthly
// product group forecast, steel grade production history), replaces the
// corresponding stored dataset, and archives the original workbook in blob
// storage for audit.
package uploads

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies which of the three plant workbooks an upload carries.
type Kind string

// Workbook kinds accepted by the ingestion endpoints.
const (
	KindDailySchedule     Kind = "daily_schedule"
	KindMonthlyForecast   Kind = "monthly_forecast"
	KindProductionHistory Kind = "production_history"
)

// Valid reports whether k is one of the accepted workbook kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindDailySchedule, KindMonthlyForecast, KindProductionHistory:
		return true
	}
	return false
}

// Upload represents an accepted workbook ingestion.
type Upload struct {
	ID               uuid.UUID `json:"id"`
	Kind             Kind      `json:"kind"`
	Filename         string    `json:"filename"`
	ContentType      string    `json:"content_type"`
	SizeBytes        int64     `json:"size_bytes"`
	RecordsProcessed int       `json:"records_processed"`
	StorageKey       string    `json:"storage_key"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

// IngestCommand carries an uploaded workbook through parsing and persistence.
type IngestCommand struct {
	Data        []byte
	Filename    string
	ContentType string
}

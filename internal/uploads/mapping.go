package uploads

import (
	"net/url"

	"github.com/stahlwerk/meltplan/pkg/query"
	"github.com/stahlwerk/meltplan/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "uploads", "u").
	Project("id", "ID").
	Project("kind", "Kind").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("records_processed", "RecordsProcessed").
	Project("storage_key", "StorageKey").
	Project("uploaded_at", "UploadedAt")

var defaultSort = query.SortField{Field: "UploadedAt", Descending: true}

// Filters contains optional filtering criteria for upload queries.
// Nil fields are ignored.
type Filters struct {
	Kind     *Kind   `json:"kind,omitempty"`
	Filename *string `json:"filename,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.Kind != nil {
		b.WhereEquals("Kind", string(*f.Kind))
	}
	b.WhereContains("Filename", f.Filename)
	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if k := Kind(values.Get("kind")); k.Valid() {
		f.Kind = &k
	}

	if n := values.Get("filename"); n != "" {
		f.Filename = &n
	}

	return f
}

func scanUpload(s repository.Scanner) (Upload, error) {
	var u Upload
	err := s.Scan(
		&u.ID,
		&u.Kind,
		&u.Filename,
		&u.ContentType,
		&u.SizeBytes,
		&u.RecordsProcessed,
		&u.StorageKey,
		&u.UploadedAt,
	)
	return u, err
}

package uploads

import (
	"context"

	"github.com/google/uuid"

	"github.com/stahlwerk/meltplan/pkg/pagination"
	"github.com/stahlwerk/meltplan/pkg/storage"
)

// System defines the public contract for workbook upload operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Upload], error)

	Find(ctx context.Context, id uuid.UUID) (*Upload, error)

	// Download returns the upload record and a stream of the archived workbook.
	Download(ctx context.Context, id uuid.UUID) (*Upload, *storage.DownloadResult, error)

	// Ingest parses the workbook for the given kind, replaces the
	// corresponding stored dataset, and archives the original file.
	Ingest(ctx context.Context, kind Kind, cmd IngestCommand) (*Upload, error)
}

package uploads

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/stahlwerk/meltplan/pkg/formatting"
	"github.com/stahlwerk/meltplan/pkg/pagination"
	"github.com/stahlwerk/meltplan/pkg/query"
	"github.com/stahlwerk/meltplan/pkg/repository"
	"github.com/stahlwerk/meltplan/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an upload repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "uploads"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Upload], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Filename")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count uploads: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanUpload)
	if err != nil {
		return nil, fmt.Errorf("query uploads: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Upload, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	u, err := repository.QueryOne(ctx, r.db, q, args, scanUpload)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}

func (r *repo) Download(ctx context.Context, id uuid.UUID) (*Upload, *storage.DownloadResult, error) {
	u, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	result, err := r.storage.Download(ctx, u.StorageKey)
	if err != nil {
		return nil, nil, err
	}

	return u, result, nil
}

func (r *repo) Ingest(ctx context.Context, kind Kind, cmd IngestCommand) (*Upload, error) {
	if len(cmd.Data) == 0 {
		return nil, ErrInvalidFile
	}

	persist, err := r.preparePersist(kind, cmd.Data)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	key := buildStorageKey(kind, id, sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("archive workbook: %w", err)
	}

	insertQ := `
		INSERT INTO uploads(id, kind, filename, content_type, size_bytes, records_processed, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, kind, filename, content_type, size_bytes, records_processed, storage_key, uploaded_at`

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Upload, error) {
		count, err := persist(ctx, tx)
		if err != nil {
			return Upload{}, err
		}

		insertArgs := []any{
			id,
			string(kind),
			cmd.Filename,
			cmd.ContentType,
			int64(len(cmd.Data)),
			count,
			key,
		}

		return repository.QueryOne(ctx, tx, insertQ, insertArgs, scanUpload)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("workbook ingested",
		"id", u.ID,
		"kind", u.Kind,
		"records", u.RecordsProcessed,
		"size", formatting.FormatBytes(u.SizeBytes, 1),
	)
	return &u, nil
}

// preparePersist parses the workbook up front so malformed files are
// rejected before any blob or database work happens.
func (r *repo) preparePersist(kind Kind, data []byte) (func(context.Context, *sql.Tx) (int, error), error) {
	switch kind {
	case KindDailySchedule:
		records, err := ParseDailySchedule(data)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, tx *sql.Tx) (int, error) {
			return r.persistSchedule(ctx, tx, records)
		}, nil

	case KindMonthlyForecast:
		records, err := ParseMonthlyForecast(data)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, tx *sql.Tx) (int, error) {
			return r.persistForecasts(ctx, tx, records)
		}, nil

	case KindProductionHistory:
		records, err := ParseProductionHistory(data)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, tx *sql.Tx) (int, error) {
			return r.persistHistory(ctx, tx, records)
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Each persist method replaces its dataset wholesale: every upload carries
// the complete current planning state, not a delta.

func (r *repo) persistSchedule(ctx context.Context, tx *sql.Tx, records []ScheduleRecord) (int, error) {
	replaced, err := repository.Exec(ctx, tx, "DELETE FROM daily_schedules")
	if err != nil {
		return 0, fmt.Errorf("clear daily schedules: %w", err)
	}

	insertQ := `
		INSERT INTO daily_schedules(date, start_time, steel_grade_id, mould_size)
		VALUES ($1, $2, $3, $4)`

	gradeIDs := make(map[string]uuid.UUID)

	for _, rec := range records {
		gradeID, ok := gradeIDs[rec.Grade]
		if !ok {
			gradeID, err = r.resolveGrade(ctx, tx, rec.Grade)
			if err != nil {
				return 0, err
			}
			gradeIDs[rec.Grade] = gradeID
		}

		if err := repository.ExecExpectOne(ctx, tx, insertQ,
			rec.Date, rec.StartTime, gradeID, rec.MouldSize,
		); err != nil {
			return 0, fmt.Errorf("insert schedule entry: %w", err)
		}
	}

	r.logger.Info("daily schedules replaced", "removed", replaced, "inserted", len(records))
	return len(records), nil
}

func (r *repo) persistForecasts(ctx context.Context, tx *sql.Tx, records []ForecastRecord) (int, error) {
	replaced, err := repository.Exec(ctx, tx, "DELETE FROM monthly_forecasts")
	if err != nil {
		return 0, fmt.Errorf("clear monthly forecasts: %w", err)
	}

	insertQ := `
		INSERT INTO monthly_forecasts(product_group_id, month, heats)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_group_id, month) DO UPDATE SET heats = EXCLUDED.heats`

	groupIDs := make(map[string]uuid.UUID)

	for _, rec := range records {
		groupID, ok := groupIDs[rec.ProductGroup]
		if !ok {
			groupID, err = getOrCreateGroup(ctx, tx, rec.ProductGroup)
			if err != nil {
				return 0, err
			}
			groupIDs[rec.ProductGroup] = groupID
		}

		if err := repository.ExecExpectOne(ctx, tx, insertQ,
			groupID, rec.Month, rec.Heats,
		); err != nil {
			return 0, fmt.Errorf("insert monthly forecast: %w", err)
		}
	}

	r.logger.Info("monthly forecasts replaced", "removed", replaced, "inserted", len(records))
	return len(records), nil
}

func (r *repo) persistHistory(ctx context.Context, tx *sql.Tx, records []HistoryRecord) (int, error) {
	replaced, err := repository.Exec(ctx, tx, "DELETE FROM production_history")
	if err != nil {
		return 0, fmt.Errorf("clear production history: %w", err)
	}

	insertQ := `
		INSERT INTO production_history(steel_grade_id, month, tons)
		VALUES ($1, $2, $3)`

	groupIDs := make(map[string]uuid.UUID)
	gradeIDs := make(map[string]uuid.UUID)

	for _, rec := range records {
		groupID, ok := groupIDs[rec.ProductGroup]
		if !ok {
			groupID, err = getOrCreateGroup(ctx, tx, rec.ProductGroup)
			if err != nil {
				return 0, err
			}
			groupIDs[rec.ProductGroup] = groupID
		}

		gradeKey := rec.ProductGroup + "/" + rec.Grade
		gradeID, ok := gradeIDs[gradeKey]
		if !ok {
			gradeID, err = getOrCreateGrade(ctx, tx, rec.Grade, groupID)
			if err != nil {
				return 0, err
			}
			gradeIDs[gradeKey] = gradeID
		}

		if err := repository.ExecExpectOne(ctx, tx, insertQ,
			gradeID, rec.Month, rec.Tons,
		); err != nil {
			return 0, fmt.Errorf("insert production record: %w", err)
		}
	}

	r.logger.Info("production history replaced", "removed", replaced, "inserted", len(records))
	return len(records), nil
}

// resolveGrade finds a grade by name regardless of group, registering it
// under its rostered group when it has never been seen before.
func (r *repo) resolveGrade(ctx context.Context, tx *sql.Tx, grade string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRowContext(ctx,
		"SELECT id FROM steel_grades WHERE name = $1 ORDER BY created_at LIMIT 1",
		grade,
	).Scan(&id)

	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("look up grade %s: %w", grade, err)
	}

	groupID, err := getOrCreateGroup(ctx, tx, groupForGrade(grade))
	if err != nil {
		return uuid.Nil, err
	}

	return getOrCreateGrade(ctx, tx, grade, groupID)
}

func getOrCreateGroup(ctx context.Context, tx *sql.Tx, name string) (uuid.UUID, error) {
	q := `
		INSERT INTO product_groups(name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`

	var id uuid.UUID
	if err := tx.QueryRowContext(ctx, q, name).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("get or create product group %s: %w", name, err)
	}
	return id, nil
}

func getOrCreateGrade(ctx context.Context, tx *sql.Tx, name string, groupID uuid.UUID) (uuid.UUID, error) {
	q := `
		INSERT INTO steel_grades(name, product_group_id)
		VALUES ($1, $2)
		ON CONFLICT (product_group_id, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`

	var id uuid.UUID
	if err := tx.QueryRowContext(ctx, q, name, groupID).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("get or create steel grade %s: %w", name, err)
	}
	return id, nil
}

func buildStorageKey(kind Kind, id uuid.UUID, filename string) string {
	return fmt.Sprintf("uploads/%s/%s/%s", kind, id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "workbook.xlsx"
	}
	return url.PathEscape(name)
}

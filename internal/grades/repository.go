package grades

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stahlwerk/meltplan/pkg/pagination"
	"github.com/stahlwerk/meltplan/pkg/query"
	"github.com/stahlwerk/meltplan/pkg/repository"
)

const pgForeignKeyCode = "23503"

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a steel grade repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "grades"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[SteelGrade], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "ProductGroup")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count steel grades: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanGrade)
	if err != nil {
		return nil, fmt.Errorf("query steel grades: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*SteelGrade, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	g, err := repository.QueryOne(ctx, r.db, q, args, scanGrade)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &g, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*SteelGrade, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	insertQ := `
		INSERT INTO steel_grades(name, product_group_id)
		VALUES ($1, $2)
		RETURNING id`

	var id uuid.UUID
	if err := r.db.QueryRowContext(ctx, insertQ, name, cmd.ProductGroupID).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyCode {
			return nil, ErrGroupNotFound
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	g, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("steel grade created", "id", g.ID, "name", g.Name, "group", g.ProductGroup)
	return g, nil
}

package forecasts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stahlwerk/meltplan/pkg/pagination"
	"github.com/stahlwerk/meltplan/pkg/query"
	"github.com/stahlwerk/meltplan/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a forecast repository implementing the System interface.
// The repository doubles as the assembler's Source against the database.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "forecasts"),
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
) (*pagination.PageResult[MonthlyForecast], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereSearch(page.Search, "ProductGroup")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count monthly forecasts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanForecast)
	if err != nil {
		return nil, fmt.Errorf("query monthly forecasts: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Compute(ctx context.Context, year int, month time.Month) (*Forecast, error) {
	forecast, err := Compute(ctx, r, year, month)
	if err != nil {
		return nil, err
	}

	r.logger.Info("forecast computed",
		"month", forecast.Month,
		"rows", len(forecast.Forecasts),
	)
	return forecast, nil
}

// MonthlyTargets implements Source. Groups are returned in definition order
// so repeated computations keep a stable group sequence.
func (r *repo) MonthlyTargets(ctx context.Context, month time.Time) ([]GroupTarget, error) {
	q := `
		SELECT m.product_group_id, g.name, m.heats
		FROM public.monthly_forecasts m
		INNER JOIN public.product_groups g ON g.id = m.product_group_id
		WHERE m.month = $1
		ORDER BY g.created_at, g.name`

	return repository.QueryMany(ctx, r.db, q, []any{month}, scanTarget)
}

// GradeTonnage implements Source. Every grade in the group is returned,
// with tonnage summed across all recorded history months and grades without
// history carried as zero.
func (r *repo) GradeTonnage(ctx context.Context, groupID uuid.UUID) ([]GradeTons, error) {
	q := `
		SELECT s.name, COALESCE(SUM(h.tons), 0)
		FROM public.steel_grades s
		LEFT JOIN public.production_history h ON h.steel_grade_id = s.id
		WHERE s.product_group_id = $1
		GROUP BY s.name
		ORDER BY s.name`

	return repository.QueryMany(ctx, r.db, q, []any{groupID}, scanGradeTons)
}

func scanTarget(s repository.Scanner) (GroupTarget, error) {
	var t GroupTarget
	err := s.Scan(&t.GroupID, &t.GroupName, &t.Heats)
	return t, err
}

func scanGradeTons(s repository.Scanner) (GradeTons, error) {
	var g GradeTons
	err := s.Scan(&g.Grade, &g.Tons)
	return g, err
}

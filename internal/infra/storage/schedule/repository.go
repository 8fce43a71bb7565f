package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/pkg/dbmetrics"
	"github.com/m04kA/HomeCare-BookingService/pkg/psqlbuilder"
)

var columns = []string{"weekday", "start_time", "end_time", "is_active", "updated_at"}

// Repository репозиторий недельного шаблона расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAll возвращает все дни шаблона в порядке Пн..Вс
func (r *Repository) GetAll(ctx context.Context) ([]domain.WeeklyScheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("weekly_schedule").
		OrderBy("day_index").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.WeeklyScheduleEntry, 0, len(domain.Weekdays))
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan: %w", ErrScanRow, err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows iteration: %w", ErrScanRow, err)
	}

	return entries, nil
}

// GetByWeekday возвращает запись шаблона для дня недели
func (r *Repository) GetByWeekday(ctx context.Context, day domain.Weekday) (*domain.WeeklyScheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("weekly_schedule").
		Where(squirrel.Eq{"weekday": day}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWeekday - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("%w: GetByWeekday - scan: %w", ErrScanRow, err)
	}

	return entry, nil
}

// Update частично обновляет запись шаблона и возвращает её новое состояние
func (r *Repository) Update(ctx context.Context, day domain.Weekday, update domain.WeeklyScheduleUpdate) (*domain.WeeklyScheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("weekly_schedule").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"weekday": day}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	if update.StartTime != nil {
		builder = builder.Set("start_time", *update.StartTime)
	}
	if update.EndTime != nil {
		builder = builder.Set("end_time", *update.EndTime)
	}
	if update.IsActive != nil {
		builder = builder.Set("is_active", *update.IsActive)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return entry, nil
}

// ToggleActive инвертирует признак активности дня
func (r *Repository) ToggleActive(ctx context.Context, day domain.Weekday) (*domain.WeeklyScheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("weekly_schedule").
		Set("is_active", squirrel.Expr("NOT is_active")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"weekday": day}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ToggleActive - build update query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("%w: ToggleActive - execute update: %w", ErrExecQuery, err)
	}

	return entry, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*domain.WeeklyScheduleEntry, error) {
	var entry domain.WeeklyScheduleEntry
	if err := row.Scan(
		&entry.Weekday,
		&entry.StartTime,
		&entry.EndTime,
		&entry.IsActive,
		&entry.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &entry, nil
}

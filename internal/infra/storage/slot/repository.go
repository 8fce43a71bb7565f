package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/pkg/dbmetrics"
	"github.com/m04kA/HomeCare-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/HomeCare-BookingService/pkg/types"
)

var selectColumns = []string{
	"s.id",
	"s.slot_date",
	"s.start_time",
	"s.end_time",
	"s.status",
	"s.booking_id",
	"s.note",
	"b.booking_code",
	"s.created_at",
	"s.updated_at",
}

// Repository репозиторий конкретных слотов на даты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CountByDate возвращает количество сгенерированных слотов на дату (в любом статусе)
func (r *Repository) CountByDate(ctx context.Context, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("slots").
		Where(squirrel.Eq{"slot_date": dateArg(date)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByDate - scan: %w", ErrScanRow, err)
	}

	return count, nil
}

// CreateMissing вставляет слоты, пропуская уже существующие (date, start_time).
// Повторный вызов для той же даты ничего не меняет - существующие слоты не перезаписываются.
func (r *Repository) CreateMissing(ctx context.Context, slots []domain.Slot) (int64, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("slots").
		Columns("slot_date", "start_time", "end_time", "status").
		Suffix("ON CONFLICT (slot_date, start_time) DO NOTHING")
	for _, s := range slots {
		builder = builder.Values(dateArg(s.Date), s.StartTime, s.EndTime, domain.SlotAvailable)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateMissing - build insert query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CreateMissing - execute insert: %w", ErrExecQuery, err)
	}

	return rowsAffected(res, "CreateMissing")
}

// ListByDate возвращает все слоты на дату с кодами бронирований
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]domain.Slot, error) {
	return r.list(ctx, "ListByDate", squirrel.Eq{"s.slot_date": dateArg(date)})
}

// ListAvailableByDate возвращает свободные слоты на дату
func (r *Repository) ListAvailableByDate(ctx context.Context, date time.Time) ([]domain.Slot, error) {
	return r.list(ctx, "ListAvailableByDate", squirrel.Eq{
		"s.slot_date": dateArg(date),
		"s.status":    domain.SlotAvailable,
	})
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	return r.get(ctx, "GetByID", squirrel.Eq{"s.id": id})
}

// GetByDateTime получает слот по дате и времени начала.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByDateTime(ctx context.Context, date time.Time, start types.TimeString) (*domain.Slot, error) {
	return r.get(ctx, "GetByDateTime", squirrel.Eq{
		"s.slot_date":  dateArg(date),
		"s.start_time": start,
	})
}

// Claim атомарно переводит слот available -> booked от имени бронирования.
// Из нескольких конкурентных вызовов успешен ровно один, остальные получают ErrSlotNotAvailable.
func (r *Repository) Claim(ctx context.Context, date time.Time, start types.TimeString, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotBooked).
		Set("booking_id", bookingID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"slot_date":  dateArg(date),
			"start_time": start,
			"status":     domain.SlotAvailable,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Claim - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Claim - execute update: %w", ErrExecQuery, err)
	}

	affected, err := rowsAffected(res, "Claim")
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSlotNotAvailable
	}

	return nil
}

// ReleaseByBooking освобождает слот, занятый бронированием. Возвращает количество освобожденных слотов
func (r *Repository) ReleaseByBooking(ctx context.Context, bookingID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotAvailable).
		Set("booking_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByBooking - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByBooking - execute update: %w", ErrExecQuery, err)
	}

	return rowsAffected(res, "ReleaseByBooking")
}

// Block блокирует свободный слот
func (r *Repository) Block(ctx context.Context, id int64, note *string) error {
	return r.transition(ctx, "Block", id, domain.SlotAvailable, domain.SlotBlockedByAdmin, note, ErrSlotNotAvailable)
}

// Unblock возвращает заблокированный администратором слот в available
func (r *Repository) Unblock(ctx context.Context, id int64) error {
	return r.transition(ctx, "Unblock", id, domain.SlotBlockedByAdmin, domain.SlotAvailable, nil, ErrSlotNotBlocked)
}

// SetHoliday переводит все свободные слоты даты в holiday. Занятые и заблокированные не трогаются
func (r *Repository) SetHoliday(ctx context.Context, date time.Time, note *string) (int64, error) {
	return r.bulkStatus(ctx, "SetHoliday", date, domain.SlotAvailable, domain.SlotHoliday, note)
}

// CancelHoliday возвращает holiday-слоты даты в available
func (r *Repository) CancelHoliday(ctx context.Context, date time.Time) (int64, error) {
	return r.bulkStatus(ctx, "CancelHoliday", date, domain.SlotHoliday, domain.SlotAvailable, nil)
}

// DeleteAvailableByDate удаляет только свободные слоты даты
func (r *Repository) DeleteAvailableByDate(ctx context.Context, date time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{
			"slot_date": dateArg(date),
			"status":    domain.SlotAvailable,
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAvailableByDate - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAvailableByDate - execute delete: %w", ErrExecQuery, err)
	}

	return rowsAffected(res, "DeleteAvailableByDate")
}

// transition условно меняет статус одного слота; при 0 строк отличает "не найден" от "не тот статус"
func (r *Repository) transition(
	ctx context.Context,
	op string,
	id int64,
	from, to domain.SlotStatus,
	note *string,
	preconditionErr error,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", to).
		Set("note", note).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	affected, err := rowsAffected(res, op)
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return preconditionErr
}

func (r *Repository) bulkStatus(
	ctx context.Context,
	op string,
	date time.Time,
	from, to domain.SlotStatus,
	note *string,
) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", to).
		Set("note", note).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"slot_date": dateArg(date), "status": from}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	return rowsAffected(res, op)
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("slots s").
		LeftJoin("bookings b ON b.id = s.booking_id").
		Where(where).
		OrderBy("s.start_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	var slots []domain.Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan: %w", ErrScanRow, op, err)
		}
		slots = append(slots, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %w", ErrScanRow, op, err)
	}

	return slots, nil
}

func (r *Repository) get(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(selectColumns...).
		From("slots s").
		LeftJoin("bookings b ON b.id = s.booking_id").
		Where(where)

	// Блокируем строку слота, если работаем в транзакции
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE OF s")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: %s - scan: %w", ErrScanRow, op, err)
	}

	return s, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var (
		s           domain.Slot
		bookingID   sql.NullInt64
		note        sql.NullString
		bookingCode sql.NullString
	)

	if err := row.Scan(
		&s.ID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.Status,
		&bookingID,
		&note,
		&bookingCode,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}

	s.Date = domain.DateOnly(s.Date)
	if bookingID.Valid {
		s.BookingID = &bookingID.Int64
	}
	if note.Valid {
		s.Note = &note.String
	}
	if bookingCode.Valid {
		s.BookingCode = &bookingCode.String
	}

	return &s, nil
}

func rowsAffected(res sql.Result, op string) (int64, error) {
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - rows affected: %w", ErrExecQuery, op, err)
	}
	return affected, nil
}

// dateArg передает дату в postgres как YYYY-MM-DD без часового пояса
func dateArg(date time.Time) string {
	return date.Format(domain.DateFormat)
}

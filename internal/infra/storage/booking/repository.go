package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/pkg/dbmetrics"
	"github.com/m04kA/HomeCare-BookingService/pkg/psqlbuilder"
)

const pqUniqueViolation = "23505"

var selectColumns = []string{
	"id",
	"booking_code",
	"patient_id",
	"service_id",
	"booking_date",
	"start_time",
	"duration_minutes",
	"address",
	"coordinates",
	"complaint",
	"notes",
	"status",
	"payment_method",
	"service_name",
	"service_price",
	"rejection_reason",
	"admin_notes",
	"confirmed_at",
	"completed_at",
	"cancelled_at",
	"rating",
	"review",
	"reviewed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db         DBExecutor
	codePrefix string
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, codePrefix string) *Repository {
	return &Repository{db: db, codePrefix: codePrefix}
}

// Create создает новое бронирование и присваивает ему код PREFIX-YYYYMMDD-NNN.
// Номер - следующий после максимального существующего на дату бронирования,
// поэтому вызывать нужно внутри транзакции вместе с проверкой квоты.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	code, err := r.nextCode(ctx, booking.BookingDate)
	if err != nil {
		return nil, err
	}
	booking.BookingCode = code

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_code",
			"patient_id",
			"service_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"address",
			"coordinates",
			"complaint",
			"notes",
			"status",
			"payment_method",
			"service_name",
			"service_price",
		).
		Values(
			booking.BookingCode,
			booking.PatientID,
			booking.ServiceID,
			dateArg(booking.BookingDate),
			booking.StartTime,
			booking.DurationMinutes,
			booking.Address,
			booking.Coordinates,
			booking.Complaint,
			booking.Notes,
			booking.Status,
			booking.PaymentMethod,
			booking.ServiceName,
			booking.ServicePrice,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, booking.BookingCode)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.get(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByCode получает бронирование по коду
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	return r.get(ctx, "GetByCode", squirrel.Eq{"booking_code": code})
}

// List возвращает бронирования по фильтру, новые даты первыми
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(selectColumns...).
		From("bookings").
		OrderBy("booking_date DESC", "start_time DESC", "id DESC")

	if filter.PatientID != nil {
		builder = builder.Where(squirrel.Eq{"patient_id": *filter.PatientID})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"booking_date": dateArg(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"booking_date": dateArg(*filter.EndDate)})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan: %w", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// CountActiveByDate считает бронирования на дату, кроме отклоненных и отмененных
func (r *Repository) CountActiveByDate(ctx context.Context, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"booking_date": dateArg(date)}).
		Where(squirrel.NotEq{"status": statusArgs(domain.InactiveStatuses)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveByDate - scan: %w", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatus меняет статус только если текущий статус равен expected (compare-and-set)
func (r *Repository) UpdateStatus(
	ctx context.Context,
	id int64,
	expected domain.BookingStatus,
	update domain.BookingStatusUpdate,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("bookings").
		Set("status", update.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": expected})

	if update.RejectionReason != nil {
		builder = builder.Set("rejection_reason", *update.RejectionReason)
	}
	if update.AdminNotes != nil {
		builder = builder.Set("admin_notes", *update.AdminNotes)
	}
	if update.ConfirmedAt != nil {
		builder = builder.Set("confirmed_at", *update.ConfirmedAt)
	}
	if update.CompletedAt != nil {
		builder = builder.Set("completed_at", *update.CompletedAt)
	}
	if update.CancelledAt != nil {
		builder = builder.Set("cancelled_at", *update.CancelledAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "UpdateStatus", id, query, args, ErrStatusChanged)
}

// AddRating сохраняет оценку только для завершенного и еще не оцененного бронирования
func (r *Repository) AddRating(ctx context.Context, id int64, rating int, review *string, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("rating", rating).
		Set("review", review).
		Set("reviewed_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusCompleted, "rating": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddRating - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "AddRating", id, query, args, ErrCannotRate)
}

// UpdatePaymentMethod меняет способ оплаты, пока бронирование ожидает подтверждения
func (r *Repository) UpdatePaymentMethod(ctx context.Context, id int64, method domain.PaymentMethod) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_method", method).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPendingConfirmation}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentMethod - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "UpdatePaymentMethod", id, query, args, ErrStatusChanged)
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// execConditional выполняет условный UPDATE; при 0 строк отличает "не найдено" от нарушенного условия
func (r *Repository) execConditional(
	ctx context.Context,
	executor DBExecutor,
	op string,
	id int64,
	query string,
	args []interface{},
	conditionErr error,
) error {
	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %w", ErrExecQuery, op, err)
	}
	if affected > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return conditionErr
}

func (r *Repository) nextCode(ctx context.Context, date time.Time) (string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	datePrefix := domain.BookingCodePrefix(r.codePrefix, date)

	query, args, err := psqlbuilder.Select("booking_code").
		From("bookings").
		Where(squirrel.Like{"booking_code": datePrefix + "%"}).
		// Коды сравниваются как строки: после -999 идет -1000, поэтому сначала по длине
		OrderBy("length(booking_code) DESC", "booking_code DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: nextCode - build select query: %v", ErrBuildQuery, err)
	}

	var last string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: nextCode - scan: %w", ErrScanRow, err)
	}

	seq, _ := domain.ParseBookingCodeSequence(last, datePrefix)
	return domain.FormatBookingCode(r.codePrefix, date, seq+1), nil
}

func (r *Repository) get(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(selectColumns...).
		From("bookings").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: %s - scan: %w", ErrScanRow, op, err)
	}

	return b, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b               domain.Booking
		coordinates     sql.NullString
		notes           sql.NullString
		rejectionReason sql.NullString
		adminNotes      sql.NullString
		confirmedAt     sql.NullTime
		completedAt     sql.NullTime
		cancelledAt     sql.NullTime
		rating          sql.NullInt32
		review          sql.NullString
		reviewedAt      sql.NullTime
	)

	if err := row.Scan(
		&b.ID,
		&b.BookingCode,
		&b.PatientID,
		&b.ServiceID,
		&b.BookingDate,
		&b.StartTime,
		&b.DurationMinutes,
		&b.Address,
		&coordinates,
		&b.Complaint,
		&notes,
		&b.Status,
		&b.PaymentMethod,
		&b.ServiceName,
		&b.ServicePrice,
		&rejectionReason,
		&adminNotes,
		&confirmedAt,
		&completedAt,
		&cancelledAt,
		&rating,
		&review,
		&reviewedAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.BookingDate = domain.DateOnly(b.BookingDate)
	b.Coordinates = nullString(coordinates)
	b.Notes = nullString(notes)
	b.RejectionReason = nullString(rejectionReason)
	b.AdminNotes = nullString(adminNotes)
	b.Review = nullString(review)
	b.ConfirmedAt = nullTime(confirmedAt)
	b.CompletedAt = nullTime(completedAt)
	b.CancelledAt = nullTime(cancelledAt)
	b.ReviewedAt = nullTime(reviewedAt)
	if rating.Valid {
		v := int(rating.Int32)
		b.Rating = &v
	}

	return &b, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}

func statusArgs(statuses []domain.BookingStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

// dateArg передает дату в postgres как YYYY-MM-DD без часового пояса
func dateArg(date time.Time) string {
	return date.Format(domain.DateFormat)
}

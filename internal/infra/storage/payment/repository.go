package payment

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

var columns = []string{
	"id",
	"booking_id",
	"method",
	"status",
	"amount",
	"paid_at",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей об оплате
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория оплат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись об оплате для бронирования
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns("booking_id", "method", "status", "amount", "notes").
		Values(payment.BookingID, payment.Method, payment.Status, payment.Amount, payment.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return payment, nil
}

// GetByBookingID получает оплату бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("%w: GetByBookingID - scan: %w", ErrScanRow, err)
	}

	return p, nil
}

// UpdateByBookingID частично обновляет оплату и возвращает её новое состояние
func (r *Repository) UpdateByBookingID(ctx context.Context, bookingID int64, update domain.PaymentUpdate) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("payments").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": bookingID}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	if update.Method != nil {
		builder = builder.Set("method", *update.Method)
	}
	if update.Status != nil {
		builder = builder.Set("status", *update.Status)
	}
	if update.PaidAt != nil {
		builder = builder.Set("paid_at", *update.PaidAt)
	}
	if update.Notes != nil {
		builder = builder.Set("notes", *update.Notes)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateByBookingID - build update query: %v", ErrBuildQuery, err)
	}

	p, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("%w: UpdateByBookingID - execute update: %w", ErrExecQuery, err)
	}

	return p, nil
}

// DeleteByBookingID удаляет оплату бронирования. Отсутствие записи ошибкой не считается
func (r *Repository) DeleteByBookingID(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByBookingID - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByBookingID - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var (
		p      domain.Payment
		paidAt sql.NullTime
		notes  sql.NullString
	)

	if err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.Method,
		&p.Status,
		&p.Amount,
		&paidAt,
		&notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if paidAt.Valid {
		p.PaidAt = &paidAt.Time
	}
	if notes.Valid {
		p.Notes = &notes.String
	}

	return &p, nil
}

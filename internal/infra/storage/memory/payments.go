package memory

import (
	"context"
	"time"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	paymentRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/payment"
)

// PaymentRepository оплаты в памяти
type PaymentRepository struct {
	store *Store
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	defer r.store.lock(ctx)()

	data := r.store.data
	data.nextPaymentID++
	now := time.Now()
	payment.ID = data.nextPaymentID
	payment.CreatedAt = now
	payment.UpdatedAt = now
	data.payments[payment.BookingID] = *payment

	created := *payment
	return &created, nil
}

func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	defer r.store.lock(ctx)()

	p, ok := r.store.data.payments[bookingID]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return &p, nil
}

func (r *PaymentRepository) UpdateByBookingID(ctx context.Context, bookingID int64, update domain.PaymentUpdate) (*domain.Payment, error) {
	defer r.store.lock(ctx)()

	p, ok := r.store.data.payments[bookingID]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	update.Apply(&p)
	p.UpdatedAt = time.Now()
	r.store.data.payments[bookingID] = p
	return &p, nil
}

func (r *PaymentRepository) DeleteByBookingID(ctx context.Context, bookingID int64) error {
	defer r.store.lock(ctx)()

	delete(r.store.data.payments, bookingID)
	return nil
}

package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/booking"
)

// BookingRepository бронирования в памяти
type BookingRepository struct {
	store *Store
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	defer r.store.lock(ctx)()

	data := r.store.data
	booking.BookingDate = domain.DateOnly(booking.BookingDate)
	booking.BookingCode = r.nextCode(booking.BookingDate)

	data.nextBookingID++
	now := time.Now()
	booking.ID = data.nextBookingID
	booking.CreatedAt = now
	booking.UpdatedAt = now
	data.bookings[booking.ID] = *booking

	created := *booking
	return &created, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	defer r.store.lock(ctx)()

	b, ok := r.store.data.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepository) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	defer r.store.lock(ctx)()

	for _, b := range r.store.data.bookings {
		if b.BookingCode == code {
			found := b
			return &found, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *BookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	defer r.store.lock(ctx)()

	var out []*domain.Booking
	for _, b := range r.store.data.bookings {
		if filter.PatientID != nil && b.PatientID != *filter.PatientID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.StartDate != nil && b.BookingDate.Before(domain.DateOnly(*filter.StartDate)) {
			continue
		}
		if filter.EndDate != nil && b.BookingDate.After(domain.DateOnly(*filter.EndDate)) {
			continue
		}
		item := b
		out = append(out, &item)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].BookingDate.Equal(out[j].BookingDate) {
			return out[i].BookingDate.After(out[j].BookingDate)
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime.IsAfter(out[j].StartTime)
		}
		return out[i].ID > out[j].ID
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *BookingRepository) CountActiveByDate(ctx context.Context, date time.Time) (int, error) {
	defer r.store.lock(ctx)()

	day := domain.DateOnly(date)
	count := 0
	for _, b := range r.store.data.bookings {
		if b.BookingDate.Equal(day) && b.IsActive() {
			count++
		}
	}
	return count, nil
}

func (r *BookingRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	expected domain.BookingStatus,
	update domain.BookingStatusUpdate,
) error {
	defer r.store.lock(ctx)()

	b, ok := r.store.data.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != expected {
		return bookingRepo.ErrStatusChanged
	}
	update.Apply(&b)
	b.UpdatedAt = time.Now()
	r.store.data.bookings[id] = b
	return nil
}

func (r *BookingRepository) AddRating(ctx context.Context, id int64, rating int, review *string, at time.Time) error {
	defer r.store.lock(ctx)()

	b, ok := r.store.data.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != domain.StatusCompleted || b.Rating != nil {
		return bookingRepo.ErrCannotRate
	}
	b.Rating = &rating
	b.Review = review
	b.ReviewedAt = &at
	b.UpdatedAt = time.Now()
	r.store.data.bookings[id] = b
	return nil
}

func (r *BookingRepository) UpdatePaymentMethod(ctx context.Context, id int64, method domain.PaymentMethod) error {
	defer r.store.lock(ctx)()

	b, ok := r.store.data.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != domain.StatusPendingConfirmation {
		return bookingRepo.ErrStatusChanged
	}
	b.PaymentMethod = method
	b.UpdatedAt = time.Now()
	r.store.data.bookings[id] = b
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	defer r.store.lock(ctx)()

	if _, ok := r.store.data.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(r.store.data.bookings, id)
	return nil
}

// nextCode вызывается под мьютексом
func (r *BookingRepository) nextCode(date time.Time) string {
	datePrefix := domain.BookingCodePrefix(r.store.codePrefix, date)
	maxSeq := 0
	for _, b := range r.store.data.bookings {
		if !strings.HasPrefix(b.BookingCode, datePrefix) {
			continue
		}
		if seq, ok := domain.ParseBookingCodeSequence(b.BookingCode, datePrefix); ok && seq > maxSeq {
			maxSeq = seq
		}
	}
	return domain.FormatBookingCode(r.store.codePrefix, date, maxSeq+1)
}

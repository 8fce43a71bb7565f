package cancel_booking

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/HomeCare-BookingService/internal/service/slotgen"
	"github.com/m04kA/HomeCare-BookingService/internal/usecase/change_booking_status"
	"github.com/m04kA/HomeCare-BookingService/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, *domain.Notification) error { return nil }

type nopEmailSink struct{}

func (nopEmailSink) SendBookingEmail(context.Context, *domain.Booking, domain.EmailKind, map[string]string) error {
	return nil
}

const patientID = int64(7)

var (
	rules  = domain.DefaultBookingRules()
	monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	// Визит в понедельник 18:00 по времени клиники
	visit = time.Date(2026, 3, 2, 18, 0, 0, 0, rules.Location)
)

func setup(t *testing.T, now time.Time, status domain.BookingStatus) (*UseCase, *memory.Store, *domain.Booking) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore(rules.BookingCodePrefix)
	log := logger.NewWithWriter(io.Discard, logger.LevelError)
	clock := fixedClock{now: now}

	gen := slotgen.NewGenerator(store.Schedule(), store.Slots(), rules.SlotDurationMinutes, log)
	_, err := gen.EnsureForDate(ctx, monday)
	require.NoError(t, err)

	b, err := store.Bookings().Create(ctx, &domain.Booking{
		PatientID:       patientID,
		ServiceID:       1,
		BookingDate:     monday,
		StartTime:       "18:00",
		DurationMinutes: 60,
		Address:         "Jl. Sudirman 1",
		Complaint:       "Боль в колене",
		Status:          status,
		PaymentMethod:   domain.PaymentCashOnVisit,
		ServicePrice:    decimal.NewFromInt(250000),
	})
	require.NoError(t, err)
	require.NoError(t, store.Slots().Claim(ctx, monday, "18:00", b.ID))

	changer := change_booking_status.NewUseCase(store.Bookings(), store.Slots(), nopNotifier{}, nopEmailSink{}, change_booking_status.ProviderContact{}, clock, log)
	return NewUseCase(store.Bookings(), changer, rules, clock, log), store, b
}

func TestUseCase_CancelReleasesSlot(t *testing.T) {
	uc, store, b := setup(t, visit.Add(-48*time.Hour), domain.StatusConfirmed)

	updated, err := uc.Execute(context.Background(), &Request{BookingID: b.ID, PatientID: patientID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByPatient, updated.Status)
	assert.NotNil(t, updated.CancelledAt)

	slot, err := store.Slots().GetByDateTime(context.Background(), monday, "18:00")
	require.NoError(t, err)
	assert.Equal(t, domain.SlotAvailable, slot.Status)
	assert.Nil(t, slot.BookingID)
}

func TestUseCase_CancellationWindow(t *testing.T) {
	window := time.Duration(rules.CancellationHours) * time.Hour

	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{name: "one second before deadline", now: visit.Add(-window - time.Second)},
		{name: "exactly at deadline", now: visit.Add(-window), wantErr: ErrTooLateToCancel},
		{name: "after deadline", now: visit.Add(-time.Hour), wantErr: ErrTooLateToCancel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, b := setup(t, tt.now, domain.StatusPendingConfirmation)

			_, err := uc.Execute(context.Background(), &Request{BookingID: b.ID, PatientID: patientID})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, domain.KindUnprocessable, domain.KindOf(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestUseCase_Rejections(t *testing.T) {
	early := visit.Add(-72 * time.Hour)

	t.Run("not owner", func(t *testing.T) {
		uc, _, b := setup(t, early, domain.StatusPendingConfirmation)
		_, err := uc.Execute(context.Background(), &Request{BookingID: b.ID, PatientID: 99})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		uc, _, _ := setup(t, early, domain.StatusPendingConfirmation)
		_, err := uc.Execute(context.Background(), &Request{BookingID: 404, PatientID: patientID})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	for _, status := range []domain.BookingStatus{
		domain.StatusEnRoute,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusRejected,
		domain.StatusCancelledByPatient,
	} {
		t.Run("status "+string(status), func(t *testing.T) {
			uc, _, b := setup(t, early, status)
			_, err := uc.Execute(context.Background(), &Request{BookingID: b.ID, PatientID: patientID})
			assert.ErrorIs(t, err, ErrNotCancellable)
		})
	}
}

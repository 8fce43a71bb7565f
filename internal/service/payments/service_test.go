package payments

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
	"github.com/m04kA/HomeCare-BookingService/pkg/logger"
	"github.com/m04kA/HomeCare-BookingService/pkg/ptr"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type recordingNotifier struct {
	sent []domain.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, item *domain.Notification) error {
	n.sent = append(n.sent, *item)
	return nil
}

const patientID = int64(42)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func setup(t *testing.T, status domain.BookingStatus) (*Service, *memory.Store, *recordingNotifier, int64) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore(domain.DefaultBookingCodePrefix)

	booking, err := store.Bookings().Create(ctx, &domain.Booking{
		PatientID:     patientID,
		ServiceID:     1,
		BookingDate:   time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
		StartTime:     "09:00",
		Status:        status,
		PaymentMethod: domain.PaymentCashOnVisit,
		ServicePrice:  decimal.NewFromInt(250000),
	})
	require.NoError(t, err)

	_, err = store.Payments().Create(ctx, &domain.Payment{
		BookingID: booking.ID,
		Method:    domain.PaymentCashOnVisit,
		Status:    domain.PaymentAwaiting,
		Amount:    booking.ServicePrice,
	})
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	svc := NewService(store.Bookings(), store.Payments(), notifier, store, fixedClock{now: now},
		logger.NewWithWriter(io.Discard, logger.LevelError))
	return svc, store, notifier, booking.ID
}

func TestService_GetByBooking(t *testing.T) {
	ctx := context.Background()
	svc, _, _, bookingID := setup(t, domain.StatusPendingConfirmation)

	payment, err := svc.GetByBooking(ctx, bookingID, domain.Actor{UserID: patientID, Role: domain.RolePatient})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentAwaiting, payment.Status)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(250000)))

	_, err = svc.GetByBooking(ctx, bookingID, domain.Actor{UserID: 1, Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = svc.GetByBooking(ctx, bookingID, domain.Actor{UserID: 7, Role: domain.RolePatient})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByBooking(ctx, 999, domain.Actor{UserID: patientID})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("paid sets paid at and notifies", func(t *testing.T) {
		svc, _, notifier, bookingID := setup(t, domain.StatusCompleted)

		payment, err := svc.UpdateStatus(ctx, bookingID, domain.PaymentPaid, ptr.Ptr("cash received"))
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentPaid, payment.Status)
		require.NotNil(t, payment.PaidAt)
		assert.True(t, payment.PaidAt.Equal(now))

		require.Len(t, notifier.sent, 1)
		assert.Equal(t, patientID, notifier.sent[0].UserID)
		assert.Equal(t, domain.NotificationPayment, notifier.sent[0].Type)
	})

	t.Run("awaiting does not notify", func(t *testing.T) {
		svc, _, notifier, bookingID := setup(t, domain.StatusCompleted)

		payment, err := svc.UpdateStatus(ctx, bookingID, domain.PaymentAwaiting, nil)
		require.NoError(t, err)
		assert.Nil(t, payment.PaidAt)
		assert.Empty(t, notifier.sent)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc, _, _, bookingID := setup(t, domain.StatusCompleted)

		_, err := svc.UpdateStatus(ctx, bookingID, domain.PaymentStatus("refunded"), nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_ChangeMethod(t *testing.T) {
	ctx := context.Background()
	owner := domain.Actor{UserID: patientID, Role: domain.RolePatient}

	t.Run("pending booking", func(t *testing.T) {
		svc, store, _, bookingID := setup(t, domain.StatusPendingConfirmation)

		payment, err := svc.ChangeMethod(ctx, bookingID, domain.PaymentTransferOnVisit, owner)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentTransferOnVisit, payment.Method)

		booking, err := store.Bookings().GetByID(ctx, bookingID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentTransferOnVisit, booking.PaymentMethod)
	})

	t.Run("confirmed booking", func(t *testing.T) {
		svc, store, _, bookingID := setup(t, domain.StatusConfirmed)

		_, err := svc.ChangeMethod(ctx, bookingID, domain.PaymentTransferOnVisit, owner)
		assert.ErrorIs(t, err, ErrCannotChangeMethod)
		assert.Equal(t, domain.KindUnprocessable, domain.KindOf(err))

		payment, err := store.Payments().GetByBookingID(ctx, bookingID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentCashOnVisit, payment.Method)
	})

	t.Run("not owner", func(t *testing.T) {
		svc, _, _, bookingID := setup(t, domain.StatusPendingConfirmation)

		_, err := svc.ChangeMethod(ctx, bookingID, domain.PaymentTransferOnVisit, domain.Actor{UserID: 7})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown method", func(t *testing.T) {
		svc, _, _, bookingID := setup(t, domain.StatusPendingConfirmation)

		_, err := svc.ChangeMethod(ctx, bookingID, domain.PaymentMethod("crypto"), owner)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

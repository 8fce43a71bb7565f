package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/slot"
	"github.com/m04kA/HomeCare-BookingService/pkg/ptr"
	"github.com/m04kA/HomeCare-BookingService/pkg/types"
)

var testDate = time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

func seedSlots(t *testing.T, store *Store, starts ...types.TimeString) {
	t.Helper()
	slots := make([]domain.Slot, 0, len(starts))
	for _, start := range starts {
		end, err := start.AddMinutes(60)
		require.NoError(t, err)
		slots = append(slots, domain.Slot{Date: testDate, StartTime: start, EndTime: end})
	}
	_, err := store.Slots().CreateMissing(context.Background(), slots)
	require.NoError(t, err)
}

func TestSlotRepository_CreateMissingIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore("CVA")
	seedSlots(t, store, "08:00", "09:00")

	require.NoError(t, store.Slots().Claim(ctx, testDate, "08:00", 42))

	created, err := store.Slots().CreateMissing(ctx, []domain.Slot{
		{Date: testDate, StartTime: "08:00", EndTime: "09:00"},
		{Date: testDate, StartTime: "09:00", EndTime: "10:00"},
		{Date: testDate, StartTime: "10:00", EndTime: "11:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created)

	slot, err := store.Slots().GetByDateTime(ctx, testDate, "08:00")
	require.NoError(t, err)
	assert.Equal(t, domain.SlotBooked, slot.Status)
	require.NotNil(t, slot.BookingID)
	assert.Equal(t, int64(42), *slot.BookingID)

	count, err := store.Slots().CountByDate(ctx, testDate)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSlotRepository_ConcurrentClaimHasSingleWinner(t *testing.T) {
	ctx := context.Background()
	store := NewStore("CVA")
	seedSlots(t, store, "10:00")

	const attempts = 50
	var (
		wg        sync.WaitGroup
		successes int32
		conflicts int32
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(bookingID int64) {
			defer wg.Done()
			err := store.Slots().Claim(ctx, testDate, "10:00", bookingID)
			switch {
			case err == nil:
				atomic.AddInt32(&successes, 1)
			case errors.Is(err, slotRepo.ErrSlotNotAvailable):
				atomic.AddInt32(&conflicts, 1)
			}
		}(int64(i + 1))
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes)
	assert.Equal(t, int32(attempts-1), conflicts)
}

func TestSlotRepository_HolidayKeepsBookedSlots(t *testing.T) {
	ctx := context.Background()
	store := NewStore("CVA")
	seedSlots(t, store, "08:00", "09:00", "10:00", "11:00", "12:00", "13:00")
	require.NoError(t, store.Slots().Claim(ctx, testDate, "10:00", 7))

	changed, err := store.Slots().SetHoliday(ctx, testDate, ptr.Ptr("Nyepi"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), changed)

	slots, err := store.Slots().ListByDate(ctx, testDate)
	require.NoError(t, err)
	for _, s := range slots {
		if s.StartTime == "10:00" {
			assert.Equal(t, domain.SlotBooked, s.Status)
			continue
		}
		assert.Equal(t, domain.SlotHoliday, s.Status)
	}

	reverted, err := store.Slots().CancelHoliday(ctx, testDate)
	require.NoError(t, err)
	assert.Equal(t, int64(5), reverted)

	available, err := store.Slots().ListAvailableByDate(ctx, testDate)
	require.NoError(t, err)
	assert.Len(t, available, 5)
}

func TestSlotRepository_BlockUnblock(t *testing.T) {
	ctx := context.Background()
	store := NewStore("CVA")
	seedSlots(t, store, "08:00")

	slot, err := store.Slots().GetByDateTime(ctx, testDate, "08:00")
	require.NoError(t, err)

	require.ErrorIs(t, store.Slots().Unblock(ctx, slot.ID), slotRepo.ErrSlotNotBlocked)
	require.NoError(t, store.Slots().Block(ctx, slot.ID, ptr.Ptr("therapist off")))
	require.ErrorIs(t, store.Slots().Block(ctx, slot.ID, nil), slotRepo.ErrSlotNotAvailable)
	require.NoError(t, store.Slots().Unblock(ctx, slot.ID))
	require.ErrorIs(t, store.Slots().Block(ctx, 999, nil), slotRepo.ErrSlotNotFound)
}

func TestStore_TransactionRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore("CVA")
	seedSlots(t, store, "08:00")
	boom := errors.New("boom")

	err := store.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err := store.Bookings().Create(txCtx, &domain.Booking{
			PatientID:    1,
			BookingDate:  testDate,
			StartTime:    "08:00",
			Status:       domain.StatusPendingConfirmation,
			ServicePrice: decimal.NewFromInt(150000),
		})
		require.NoError(t, err)
		require.NoError(t, store.Slots().Claim(txCtx, testDate, "08:00", created.ID))
		return boom
	})
	require.ErrorIs(t, err, boom)

	slot, err := store.Slots().GetByDateTime(ctx, testDate, "08:00")
	require.NoError(t, err)
	assert.Equal(t, domain.SlotAvailable, slot.Status)

	_, err = store.Bookings().GetByID(ctx, 1)
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)
}

func TestBookingRepository_CodesPerDate(t *testing.T) {
	ctx := context.Background()
	store := NewStore("CVA")

	first, err := store.Bookings().Create(ctx, &domain.Booking{BookingDate: testDate})
	require.NoError(t, err)
	second, err := store.Bookings().Create(ctx, &domain.Booking{BookingDate: testDate})
	require.NoError(t, err)
	other, err := store.Bookings().Create(ctx, &domain.Booking{BookingDate: testDate.AddDate(0, 0, 1)})
	require.NoError(t, err)

	assert.Equal(t, "CVA-20260306-001", first.BookingCode)
	assert.Equal(t, "CVA-20260306-002", second.BookingCode)
	assert.Equal(t, "CVA-20260307-001", other.BookingCode)
}

func TestBookingRepository_UpdateStatusIsCompareAndSet(t *testing.T) {
	ctx := context.Background()
	store := NewStore("CVA")

	b, err := store.Bookings().Create(ctx, &domain.Booking{BookingDate: testDate, Status: domain.StatusPendingConfirmation})
	require.NoError(t, err)

	update := domain.BookingStatusUpdate{Status: domain.StatusConfirmed}
	require.NoError(t, store.Bookings().UpdateStatus(ctx, b.ID, domain.StatusPendingConfirmation, update))
	require.ErrorIs(t,
		store.Bookings().UpdateStatus(ctx, b.ID, domain.StatusPendingConfirmation, update),
		bookingRepo.ErrStatusChanged,
	)
	require.ErrorIs(t,
		store.Bookings().UpdateStatus(ctx, 999, domain.StatusPendingConfirmation, update),
		bookingRepo.ErrBookingNotFound,
	)
}

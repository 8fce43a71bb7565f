package get_available_dates

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/HomeCare-BookingService/internal/service/slotgen"
	"github.com/m04kA/HomeCare-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/HomeCare-BookingService/pkg/logger"
	"github.com/m04kA/HomeCare-BookingService/pkg/ptr"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var rules = domain.DefaultBookingRules()

func date(day int) time.Time {
	return time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
}

func newUseCase() (*UseCase, *memory.Store, *slotgen.Generator) {
	// 2026-03-01 10:00 по времени клиники (воскресенье)
	clock := fixedClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, rules.Location)}
	store := memory.NewStore(rules.BookingCodePrefix)
	log := logger.NewWithWriter(io.Discard, logger.LevelError)
	gen := slotgen.NewGenerator(store.Schedule(), store.Slots(), rules.SlotDurationMinutes, log)
	slots := get_available_slots.NewUseCase(store.Slots(), gen, rules, clock, log)
	return NewUseCase(slots, rules, clock, log), store, gen
}

func TestUseCase_DefaultWindow(t *testing.T) {
	uc, _, _ := newUseCase()

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Equal(t, date(1), resp.StartDate)
	assert.Equal(t, date(15), resp.EndDate)
	require.Len(t, resp.Dates, 15)
	assert.Equal(t, 4, resp.Dates[0].AvailableSlots)
	// 2026-03-06 пятница
	assert.Equal(t, date(6), resp.Dates[5].Date)
	assert.Equal(t, 14, resp.Dates[5].AvailableSlots)
}

func TestUseCase_SkipsHolidayAndCountsTakenSlots(t *testing.T) {
	ctx := context.Background()
	uc, store, gen := newUseCase()

	_, err := gen.EnsureForDate(ctx, date(3))
	require.NoError(t, err)
	_, err = store.Slots().SetHoliday(ctx, date(3), ptr.Ptr("Nyepi"))
	require.NoError(t, err)

	_, err = gen.EnsureForDate(ctx, date(4))
	require.NoError(t, err)
	require.NoError(t, store.Slots().Claim(ctx, date(4), "18:00", 1))

	resp, err := uc.Execute(ctx, &Request{StartDate: ptr.Ptr(date(2)), EndDate: ptr.Ptr(date(4))})
	require.NoError(t, err)
	require.Len(t, resp.Dates, 2)
	assert.Equal(t, domain.DateAvailability{Date: date(2), AvailableSlots: 4}, resp.Dates[0])
	assert.Equal(t, domain.DateAvailability{Date: date(4), AvailableSlots: 3}, resp.Dates[1])
}

func TestUseCase_InvalidRanges(t *testing.T) {
	uc, _, _ := newUseCase()

	_, err := uc.Execute(context.Background(), &Request{StartDate: ptr.Ptr(date(10)), EndDate: ptr.Ptr(date(9))})
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.Equal(t, domain.KindValidationFailed, domain.KindOf(err))

	end := date(1).AddDate(0, 0, domain.MaxAvailabilityRangeDays)
	_, err = uc.Execute(context.Background(), &Request{StartDate: ptr.Ptr(date(1)), EndDate: &end})
	assert.ErrorIs(t, err, ErrRangeTooLong)
}

package get_available_slots

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
	"github.com/m04kA/HomeCare-BookingService/pkg/logger"
	"github.com/m04kA/HomeCare-BookingService/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var (
	rules  = domain.DefaultBookingRules()
	monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
)

func newUseCase(now time.Time) (*UseCase, *memory.Store) {
	store := memory.NewStore(rules.BookingCodePrefix)
	log := logger.NewWithWriter(io.Discard, logger.LevelError)
	gen := slotgen.NewGenerator(store.Schedule(), store.Slots(), rules.SlotDurationMinutes, log)
	return NewUseCase(store.Slots(), gen, rules, fixedClock{now: now}, log), store
}

func startsOf(slots []domain.Slot) []types.TimeString {
	out := make([]types.TimeString, len(slots))
	for i, s := range slots {
		out[i] = s.StartTime
	}
	return out
}

func TestUseCase_FutureDate(t *testing.T) {
	uc, _ := newUseCase(time.Date(2026, 3, 1, 10, 0, 0, 0, rules.Location))

	resp, err := uc.Execute(context.Background(), &Request{Date: monday})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"18:00", "19:00", "20:00", "21:00"}, startsOf(resp.Slots))
}

func TestUseCase_LeadTimeIsStrict(t *testing.T) {
	// Ровно за 3 часа до 19:00 слот 19:00 уже недоступен
	now := time.Date(2026, 3, 2, 16, 0, 0, 0, rules.Location)
	uc, _ := newUseCase(now)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"20:00", "21:00"}, startsOf(resp.Slots))
}

func TestUseCase_ExcludesTakenSlots(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase(time.Date(2026, 3, 1, 10, 0, 0, 0, rules.Location))

	_, err := uc.Execute(ctx, &Request{Date: monday})
	require.NoError(t, err)
	require.NoError(t, store.Slots().Claim(ctx, monday, "18:00", 1))

	resp, err := uc.Execute(ctx, &Request{Date: monday})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"19:00", "20:00", "21:00"}, startsOf(resp.Slots))
}

func TestUseCase_PastDate(t *testing.T) {
	uc, _ := newUseCase(time.Date(2026, 3, 10, 10, 0, 0, 0, rules.Location))

	resp, err := uc.Execute(context.Background(), &Request{Date: monday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_MissingDate(t *testing.T) {
	uc, _ := newUseCase(time.Now())

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

package slots

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
	"github.com/m04kA/HomeCare-BookingService/pkg/ptr"
)

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func newService() (*Service, *memory.Store) {
	store := memory.NewStore(domain.DefaultBookingCodePrefix)
	log := logger.NewWithWriter(io.Discard, logger.LevelError)
	gen := slotgen.NewGenerator(store.Schedule(), store.Slots(), 60, log)
	return NewService(store.Slots(), gen, log), store
}

func TestService_GetByDate_GeneratesLazily(t *testing.T) {
	svc, _ := newService()

	slots, err := svc.GetByDate(context.Background(), monday)
	require.NoError(t, err)
	assert.Len(t, slots, 4)
}

func TestService_BlockUnblock(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	slots, err := svc.GetByDate(ctx, monday)
	require.NoError(t, err)
	id := slots[0].ID

	blocked, err := svc.Block(ctx, id, ptr.Ptr("therapist on leave"))
	require.NoError(t, err)
	assert.Equal(t, domain.SlotBlockedByAdmin, blocked.Status)
	assert.Equal(t, "therapist on leave", *blocked.Note)

	_, err = svc.Block(ctx, id, nil)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	unblocked, err := svc.Unblock(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotAvailable, unblocked.Status)

	_, err = svc.Unblock(ctx, id)
	assert.ErrorIs(t, err, ErrSlotNotBlocked)
	assert.Equal(t, domain.KindUnprocessable, domain.KindOf(err))

	_, err = svc.Block(ctx, 999, nil)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestService_Holiday(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()

	slots, err := svc.GetByDate(ctx, monday)
	require.NoError(t, err)
	require.NoError(t, store.Slots().Claim(ctx, monday, slots[1].StartTime, 10))

	count, err := svc.SetHoliday(ctx, monday, ptr.Ptr("Nyepi"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	after, err := svc.GetByDate(ctx, monday)
	require.NoError(t, err)
	for _, s := range after {
		if s.ID == slots[1].ID {
			assert.Equal(t, domain.SlotBooked, s.Status)
			continue
		}
		assert.Equal(t, domain.SlotHoliday, s.Status)
	}

	count, err = svc.CancelHoliday(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestService_SetHoliday_GeneratesFirst(t *testing.T) {
	svc, _ := newService()

	count, err := svc.SetHoliday(context.Background(), monday.AddDate(0, 0, 7), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestService_DeleteAvailable(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()

	slots, err := svc.GetByDate(ctx, monday)
	require.NoError(t, err)
	require.NoError(t, store.Slots().Claim(ctx, monday, slots[0].StartTime, 10))

	deleted, err := svc.DeleteAvailable(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	left, err := store.Slots().ListByDate(ctx, monday)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, domain.SlotBooked, left[0].Status)
}

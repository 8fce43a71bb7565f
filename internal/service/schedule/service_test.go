package schedule

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/HomeCare-BookingService/pkg/logger"
	"github.com/m04kA/HomeCare-BookingService/pkg/ptr"
	"github.com/m04kA/HomeCare-BookingService/pkg/types"
)

func newService() *Service {
	store := memory.NewStore(domain.DefaultBookingCodePrefix)
	return NewService(store.Schedule(), logger.NewWithWriter(io.Discard, logger.LevelError))
}

func TestService_GetAll(t *testing.T) {
	entries, err := newService().GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 7)
	for i, e := range entries {
		assert.Equal(t, domain.Weekdays[i], e.Weekday)
	}
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps other fields", func(t *testing.T) {
		svc := newService()
		before, err := svc.GetByWeekday(ctx, domain.Monday)
		require.NoError(t, err)

		updated, err := svc.Update(ctx, domain.Monday, domain.WeeklyScheduleUpdate{
			StartTime: ptr.Ptr(types.TimeString("17:00")),
		})
		require.NoError(t, err)
		assert.Equal(t, types.TimeString("17:00"), updated.StartTime)
		assert.Equal(t, before.EndTime, updated.EndTime)
		assert.Equal(t, before.IsActive, updated.IsActive)
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := newService().Update(ctx, domain.Monday, domain.WeeklyScheduleUpdate{
			StartTime: ptr.Ptr(types.TimeString("23:00")),
		})
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
		assert.Equal(t, domain.KindValidationFailed, domain.KindOf(err))
	})

	t.Run("bad time format", func(t *testing.T) {
		_, err := newService().Update(ctx, domain.Monday, domain.WeeklyScheduleUpdate{
			EndTime: ptr.Ptr(types.TimeString("25:00")),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty update", func(t *testing.T) {
		_, err := newService().Update(ctx, domain.Monday, domain.WeeklyScheduleUpdate{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown weekday", func(t *testing.T) {
		_, err := newService().Update(ctx, domain.Weekday("funday"), domain.WeeklyScheduleUpdate{IsActive: ptr.Ptr(false)})
		assert.ErrorIs(t, err, ErrInvalidWeekday)
	})
}

func TestService_ToggleActive(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	before, err := svc.GetByWeekday(ctx, domain.Friday)
	require.NoError(t, err)

	toggled, err := svc.ToggleActive(ctx, domain.Friday)
	require.NoError(t, err)
	assert.Equal(t, !before.IsActive, toggled.IsActive)

	again, err := svc.ToggleActive(ctx, domain.Friday)
	require.NoError(t, err)
	assert.Equal(t, before.IsActive, again.IsActive)
}

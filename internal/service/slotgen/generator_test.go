package slotgen

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/HomeCare-BookingService/pkg/logger"
	"github.com/m04kA/HomeCare-BookingService/pkg/types"
)

func date(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBuildSlots(t *testing.T) {
	day := date("2026-03-02")

	tests := []struct {
		name     string
		entry    *domain.WeeklyScheduleEntry
		duration int
		want     []types.TimeString
	}{
		{
			name:     "evening window",
			entry:    &domain.WeeklyScheduleEntry{StartTime: "18:00", EndTime: "22:00", IsActive: true},
			duration: 60,
			want:     []types.TimeString{"18:00", "19:00", "20:00", "21:00"},
		},
		{
			name:     "partial last slot dropped",
			entry:    &domain.WeeklyScheduleEntry{StartTime: "08:00", EndTime: "10:30", IsActive: true},
			duration: 60,
			want:     []types.TimeString{"08:00", "09:00"},
		},
		{
			name:     "custom duration",
			entry:    &domain.WeeklyScheduleEntry{StartTime: "09:00", EndTime: "10:30", IsActive: true},
			duration: 45,
			want:     []types.TimeString{"09:00", "09:45"},
		},
		{
			name:     "window ends at midnight boundary",
			entry:    &domain.WeeklyScheduleEntry{StartTime: "22:00", EndTime: "23:59", IsActive: true},
			duration: 60,
			want:     []types.TimeString{"22:00"},
		},
		{
			name:     "inactive day",
			entry:    &domain.WeeklyScheduleEntry{StartTime: "18:00", EndTime: "22:00", IsActive: false},
			duration: 60,
			want:     []types.TimeString{},
		},
		{
			name:     "missing entry",
			entry:    nil,
			duration: 60,
			want:     []types.TimeString{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := BuildSlots(tt.entry, day, tt.duration)
			require.NoError(t, err)
			assert.Equal(t, tt.want, startTimes(slots))
			for _, s := range slots {
				assert.Equal(t, domain.SlotAvailable, s.Status)
				assert.Equal(t, day, s.Date)
				end, err := s.StartTime.AddMinutes(tt.duration)
				require.NoError(t, err)
				assert.Equal(t, end, s.EndTime)
			}
		})
	}
}

func newGenerator() (*Generator, *memory.Store) {
	store := memory.NewStore(domain.DefaultBookingCodePrefix)
	gen := NewGenerator(store.Schedule(), store.Slots(), 60, logger.NewWithWriter(io.Discard, logger.LevelError))
	return gen, store
}

func TestGenerator_EnsureForDate_Idempotent(t *testing.T) {
	ctx := context.Background()
	gen, store := newGenerator()
	monday := date("2026-03-02")

	count, err := gen.EnsureForDate(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	count, err = gen.EnsureForDate(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	slots, err := store.Slots().ListByDate(ctx, monday)
	require.NoError(t, err)
	assert.Len(t, slots, 4)
}

func TestGenerator_EnsureForDate_InactiveDay(t *testing.T) {
	ctx := context.Background()
	gen, store := newGenerator()

	_, err := store.Schedule().ToggleActive(ctx, domain.Tuesday)
	require.NoError(t, err)

	count, err := gen.EnsureForDate(ctx, date("2026-03-03"))
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGenerator_GenerateForRange(t *testing.T) {
	ctx := context.Background()
	gen, _ := newGenerator()

	// Пн..Вс: пять вечерних дней по 4 слота и пятница/суббота по 14
	result, err := gen.GenerateForRange(ctx, date("2026-03-02"), date("2026-03-08"))
	require.NoError(t, err)
	require.Len(t, result, 7)

	counts := make([]int, len(result))
	for i, r := range result {
		counts[i] = r.SlotsCount
	}
	assert.Equal(t, []int{4, 4, 4, 4, 14, 14, 4}, counts)

	_, err = gen.GenerateForRange(ctx, date("2026-03-08"), date("2026-03-02"))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = gen.GenerateForRange(ctx, date("2026-01-01"), date("2026-06-01"))
	assert.ErrorIs(t, err, ErrRangeTooLong)
	assert.Equal(t, domain.KindValidationFailed, domain.KindOf(err))
}

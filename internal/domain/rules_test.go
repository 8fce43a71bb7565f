package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRules_TodayUsesClinicZone(t *testing.T) {
	rules := DefaultBookingRules()
	rules.Location = time.FixedZone("WIB", 7*3600)

	// 20:00 UTC is already the next day in UTC+7
	now := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), rules.Today(now))
}

func TestBookingRules_Boundaries(t *testing.T) {
	rules := DefaultBookingRules()
	rules.Location = time.UTC
	now := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(3*time.Hour), rules.EarliestBookable(now))
	assert.Equal(t, now.AddDate(0, 0, 14), rules.LatestBookable(now))

	instant, err := rules.SlotInstant(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), "10:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC), rules.CancellationDeadline(instant))
}

func TestDatesBetween(t *testing.T) {
	start := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	dates := DatesBetween(start, end)
	require.Len(t, dates, 4)
	assert.Equal(t, start, dates[0])
	assert.Equal(t, end, dates[3])

	assert.Empty(t, DatesBetween(end, start))
}

func TestWeekdayOf(t *testing.T) {
	// 2026-03-02 is a Monday
	assert.Equal(t, Monday, WeekdayOf(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Sunday, WeekdayOf(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 6, Sunday.Index())
	assert.False(t, Weekday("funday").IsValid())
}

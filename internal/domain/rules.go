package domain

import (
	"time"

	"github.com/m04kA/HomeCare-BookingService/pkg/types"
)

// BookingRules are the clinic-wide booking limits
type BookingRules struct {
	SlotDurationMinutes   int
	MaxBookingsPerDay     int
	AdvanceBookingDays    int
	MinHoursBeforeBooking int
	CancellationHours     int
	BookingCodePrefix     string
	Location              *time.Location
}

// DefaultBookingRules returns the rules used when nothing is configured
func DefaultBookingRules() BookingRules {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	return BookingRules{
		SlotDurationMinutes:   DefaultSlotDurationMinutes,
		MaxBookingsPerDay:     DefaultMaxBookingsPerDay,
		AdvanceBookingDays:    DefaultAdvanceBookingDays,
		MinHoursBeforeBooking: DefaultMinHoursBeforeBooking,
		CancellationHours:     DefaultCancellationHours,
		BookingCodePrefix:     DefaultBookingCodePrefix,
		Location:              loc,
	}
}

func (r BookingRules) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

// Today returns the clinic's current civil date
func (r BookingRules) Today(now time.Time) time.Time {
	return DateOnly(now.In(r.location()))
}

// SlotInstant returns the moment a slot starts in the clinic time zone
func (r BookingRules) SlotInstant(date time.Time, start types.TimeString) (time.Time, error) {
	return start.On(date, r.location())
}

// EarliestBookable is the lead-time boundary: instants before it are too soon
func (r BookingRules) EarliestBookable(now time.Time) time.Time {
	return now.Add(time.Duration(r.MinHoursBeforeBooking) * time.Hour)
}

// LatestBookable is the advance-window boundary: instants after it are too far
func (r BookingRules) LatestBookable(now time.Time) time.Time {
	return now.AddDate(0, 0, r.AdvanceBookingDays)
}

// CancellationDeadline is the last moment a patient may still cancel a visit starting at instant
func (r BookingRules) CancellationDeadline(instant time.Time) time.Time {
	return instant.Add(-time.Duration(r.CancellationHours) * time.Hour)
}

package domain

import (
	"time"

	"github.com/m04kA/HomeCare-BookingService/pkg/types"
)

// Weekday keys the weekly template
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays in template order (Mon..Sun)
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayByTime = map[time.Weekday]Weekday{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// WeekdayOf resolves the template key for a calendar date
func WeekdayOf(date time.Time) Weekday {
	return weekdayByTime[date.Weekday()]
}

// IsValid reports whether w is one of the seven template keys
func (w Weekday) IsValid() bool {
	return w.Index() >= 0
}

// Index returns the Mon..Sun position of w, or -1
func (w Weekday) Index() int {
	for i, d := range Weekdays {
		if d == w {
			return i
		}
	}
	return -1
}

// WeeklyScheduleEntry is the working window for one weekday
type WeeklyScheduleEntry struct {
	Weekday   Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
	IsActive  bool
	UpdatedAt time.Time
}

// WeeklyScheduleUpdate is a partial update of a template entry; nil fields are left untouched
type WeeklyScheduleUpdate struct {
	StartTime *types.TimeString
	EndTime   *types.TimeString
	IsActive  *bool
}

// IsEmpty reports whether the update changes nothing
func (u WeeklyScheduleUpdate) IsEmpty() bool {
	return u.StartTime == nil && u.EndTime == nil && u.IsActive == nil
}

// Apply returns a copy of e with the update applied
func (u WeeklyScheduleUpdate) Apply(e WeeklyScheduleEntry) WeeklyScheduleEntry {
	if u.StartTime != nil {
		e.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		e.EndTime = *u.EndTime
	}
	if u.IsActive != nil {
		e.IsActive = *u.IsActive
	}
	return e
}

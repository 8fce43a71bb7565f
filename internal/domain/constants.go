package domain

// Default booking rules
const (
	DefaultSlotDurationMinutes   = 60
	DefaultMaxBookingsPerDay     = 4
	DefaultAdvanceBookingDays    = 14
	DefaultMinHoursBeforeBooking = 3
	DefaultCancellationHours     = 24
	DefaultBookingCodePrefix     = "CVA"
	DefaultTimezone              = "Asia/Jakarta"
)

// Business validation constants
const (
	MinSlotDurationMinutes   = 15
	MaxSlotDurationMinutes   = 240
	MaxGenerateRangeDays     = 92
	MaxAvailabilityRangeDays = 62
	MinRating                = 1
	MaxRating                = 5
	MaxNotesLength           = 1000
	MaxAddressLength         = 500
	MaxReviewLength          = 1000
	MaxNotificationsPageSize = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

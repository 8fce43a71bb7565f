package domain

import (
	"time"

	"github.com/m04kA/HomeCare-BookingService/pkg/types"
)

// SlotStatus represents the status of a concrete slot
type SlotStatus string

const (
	SlotAvailable      SlotStatus = "available"
	SlotBooked         SlotStatus = "booked"
	SlotBlockedByAdmin SlotStatus = "blocked_by_admin"
	SlotHoliday        SlotStatus = "holiday"
)

// Slot is a concrete bookable interval on a date
type Slot struct {
	ID        int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    SlotStatus
	BookingID *int64
	Note      *string

	// Filled on admin reads
	BookingCode *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAvailable returns true if the slot can be claimed
func (s *Slot) IsAvailable() bool {
	return s.Status == SlotAvailable
}

// SlotGeneration is the result of generating slots for one date
type SlotGeneration struct {
	Date       time.Time
	SlotsCount int
}

// DateAvailability is the number of bookable slots on a date
type DateAvailability struct {
	Date           time.Time
	AvailableSlots int
}

package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/HomeCare-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPendingConfirmation BookingStatus = "pending_confirmation"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusScheduled           BookingStatus = "scheduled"
	StatusEnRoute             BookingStatus = "en_route"
	StatusInProgress          BookingStatus = "in_progress"
	StatusCompleted           BookingStatus = "completed"
	StatusRejected            BookingStatus = "rejected"
	StatusCancelledByPatient  BookingStatus = "cancelled_by_patient"
	StatusCancelledBySystem   BookingStatus = "cancelled_by_system"
)

// AllBookingStatuses lists every status in lifecycle order
var AllBookingStatuses = []BookingStatus{
	StatusPendingConfirmation,
	StatusConfirmed,
	StatusScheduled,
	StatusEnRoute,
	StatusInProgress,
	StatusCompleted,
	StatusRejected,
	StatusCancelledByPatient,
	StatusCancelledBySystem,
}

// bookingTransitions is the legal transition table; terminal statuses have no entry
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPendingConfirmation: {StatusConfirmed, StatusRejected, StatusCancelledByPatient, StatusCancelledBySystem},
	StatusConfirmed:           {StatusScheduled, StatusEnRoute, StatusInProgress, StatusCompleted, StatusCancelledByPatient, StatusCancelledBySystem},
	StatusScheduled:           {StatusEnRoute, StatusInProgress, StatusCompleted, StatusCancelledByPatient, StatusCancelledBySystem},
	StatusEnRoute:             {StatusInProgress, StatusCompleted, StatusCancelledBySystem},
	StatusInProgress:          {StatusCompleted},
}

// InactiveStatuses do not count toward the daily quota
var InactiveStatuses = []BookingStatus{
	StatusRejected,
	StatusCancelledByPatient,
	StatusCancelledBySystem,
}

// PatientCancellableStatuses can be cancelled by the patient
var PatientCancellableStatuses = []BookingStatus{
	StatusPendingConfirmation,
	StatusConfirmed,
	StatusScheduled,
}

// IsValid reports whether s is a known status
func (s BookingStatus) IsValid() bool {
	for _, known := range AllBookingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no transition leaves s
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// ReleasesSlot returns true if entering s frees the claimed slot
func (s BookingStatus) ReleasesSlot() bool {
	return containsStatus(InactiveStatuses, s)
}

// CanTransitionTo reports whether from -> to is in the transition table
func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	return containsStatus(bookingTransitions[s], to)
}

// AllowedTransitions returns a copy of the targets reachable from s
func (s BookingStatus) AllowedTransitions() []BookingStatus {
	return append([]BookingStatus(nil), bookingTransitions[s]...)
}

// ValidateTransition returns ErrInvalidTransition naming both statuses when the move is illegal
func ValidateTransition(from, to BookingStatus) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

func containsStatus(list []BookingStatus, s BookingStatus) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// Booking represents a home visit booking
type Booking struct {
	ID              int64
	BookingCode     string
	PatientID       int64
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Address         string
	Coordinates     *string
	Complaint       string
	Notes           *string
	Status          BookingStatus
	PaymentMethod   PaymentMethod

	// Denormalized service data
	ServiceName  string
	ServicePrice decimal.Decimal

	RejectionReason *string
	AdminNotes      *string
	ConfirmedAt     *time.Time
	CompletedAt     *time.Time
	CancelledAt     *time.Time

	Rating     *int
	Review     *string
	ReviewedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking counts toward the daily quota
func (b *Booking) IsActive() bool {
	return !containsStatus(InactiveStatuses, b.Status)
}

// CanBeCancelledByPatient returns true if the status allows patient cancellation
func (b *Booking) CanBeCancelledByPatient() bool {
	return containsStatus(PatientCancellableStatuses, b.Status)
}

// IsRated returns true if the patient already left a rating
func (b *Booking) IsRated() bool {
	return b.Rating != nil
}

// IsOwnedBy returns true if the booking belongs to the patient
func (b *Booking) IsOwnedBy(patientID int64) bool {
	return b.PatientID == patientID
}

// BookingStatusUpdate is the set of fields written together with a status change
type BookingStatusUpdate struct {
	Status          BookingStatus
	RejectionReason *string
	AdminNotes      *string
	ConfirmedAt     *time.Time
	CompletedAt     *time.Time
	CancelledAt     *time.Time
}

// NewBookingStatusUpdate builds the update for moving into status at the given instant
func NewBookingStatusUpdate(status BookingStatus, at time.Time) BookingStatusUpdate {
	update := BookingStatusUpdate{Status: status}
	switch {
	case status == StatusConfirmed:
		update.ConfirmedAt = &at
	case status == StatusCompleted:
		update.CompletedAt = &at
	case status.ReleasesSlot():
		update.CancelledAt = &at
	}
	return update
}

// Apply writes the update into b
func (u BookingStatusUpdate) Apply(b *Booking) {
	b.Status = u.Status
	if u.RejectionReason != nil {
		b.RejectionReason = u.RejectionReason
	}
	if u.AdminNotes != nil {
		b.AdminNotes = u.AdminNotes
	}
	if u.ConfirmedAt != nil {
		b.ConfirmedAt = u.ConfirmedAt
	}
	if u.CompletedAt != nil {
		b.CompletedAt = u.CompletedAt
	}
	if u.CancelledAt != nil {
		b.CancelledAt = u.CancelledAt
	}
}

// BookingFilter фильтр для списков бронирований
type BookingFilter struct {
	PatientID *int64         // Только бронирования пациента (опционально)
	Status    *BookingStatus // Фильтр по статусу (опционально)
	StartDate *time.Time     // Начало периода включительно (опционально)
	EndDate   *time.Time     // Конец периода включительно (опционально)
	Limit     int            // 0 = без ограничения
	Offset    int
}

// FormatBookingCode builds PREFIX-YYYYMMDD-NNN
func FormatBookingCode(prefix string, date time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, date.Format("20060102"), seq)
}

// BookingCodePrefix returns the PREFIX-YYYYMMDD- part shared by codes of one date
func BookingCodePrefix(prefix string, date time.Time) string {
	return fmt.Sprintf("%s-%s-", prefix, date.Format("20060102"))
}

// ParseBookingCodeSequence extracts NNN from a code with the given date prefix
func ParseBookingCodeSequence(code, datePrefix string) (int, bool) {
	if len(code) <= len(datePrefix) || code[:len(datePrefix)] != datePrefix {
		return 0, false
	}
	var seq int
	if _, err := fmt.Sscanf(code[len(datePrefix):], "%d", &seq); err != nil {
		return 0, false
	}
	return seq, true
}

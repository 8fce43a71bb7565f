package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the patient pays during the visit
type PaymentMethod string

const (
	PaymentCashOnVisit     PaymentMethod = "cash_on_visit"
	PaymentTransferOnVisit PaymentMethod = "transfer_on_visit"
)

// IsValid reports whether m is a supported method
func (m PaymentMethod) IsValid() bool {
	return m == PaymentCashOnVisit || m == PaymentTransferOnVisit
}

// PaymentStatus is set manually by the administrator
type PaymentStatus string

const (
	PaymentAwaiting PaymentStatus = "awaiting"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
)

// IsValid reports whether s is a known payment status
func (s PaymentStatus) IsValid() bool {
	return s == PaymentAwaiting || s == PaymentPaid || s == PaymentFailed
}

// Payment is the 1:1 payment record of a booking
type Payment struct {
	ID        int64
	BookingID int64
	Method    PaymentMethod
	Status    PaymentStatus
	Amount    decimal.Decimal
	PaidAt    *time.Time
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentUpdate is a partial update of a payment; nil fields are left untouched
type PaymentUpdate struct {
	Method *PaymentMethod
	Status *PaymentStatus
	PaidAt *time.Time
	Notes  *string
}

// Apply writes the update into p
func (u PaymentUpdate) Apply(p *Payment) {
	if u.Method != nil {
		p.Method = *u.Method
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.PaidAt != nil {
		p.PaidAt = u.PaidAt
	}
	if u.Notes != nil {
		p.Notes = u.Notes
	}
}

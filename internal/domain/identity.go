package domain

// Role of the caller as asserted by the gateway
type Role string

const (
	RolePatient Role = "patient"
	RoleAdmin   Role = "admin"
)

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID int64
	Role   Role
}

// IsAdmin returns true for administrators
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanAccessBooking returns true for admins and the booking owner
func (a Actor) CanAccessBooking(b *Booking) bool {
	return a.IsAdmin() || b.IsOwnedBy(a.UserID)
}

package domain

// EmailKind selects the email template on the delivery side
type EmailKind string

const (
	EmailNewBookingAdminAlert EmailKind = "new_booking_admin_alert"
	EmailBookingConfirmed     EmailKind = "confirmed"
	EmailBookingRejected      EmailKind = "rejected"
)

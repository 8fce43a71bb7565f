package change_booking_status

import "github.com/m04kA/HomeCare-BookingService/internal/domain"

// DefaultRejectionReason подставляется в письмо, если администратор не указал причину
const DefaultRejectionReason = "No reason provided"

// Request модель запроса на смену статуса бронирования
type Request struct {
	BookingID       int64
	Status          domain.BookingStatus
	Actor           domain.Actor
	RejectionReason *string
	AdminNotes      *string
}

// ProviderContact контакты клиники, которые попадают в письмо о подтверждении
type ProviderContact struct {
	Name  string
	Phone string
	Email string
}

func (c ProviderContact) extra() map[string]string {
	return map[string]string{
		"provider_name":  c.Name,
		"provider_phone": c.Phone,
		"provider_email": c.Email,
	}
}

package change_booking_status

import (
	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	changeStatus "github.com/m04kA/HomeCare-BookingService/internal/usecase/change_booking_status"
)

// ChangeStatusRequest HTTP request model
type ChangeStatusRequest struct {
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
	AdminNotes      *string `json:"adminNotes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ChangeStatusRequest) ToUseCaseRequest(bookingID int64, actor domain.Actor) *changeStatus.Request {
	return &changeStatus.Request{
		BookingID:       bookingID,
		Status:          domain.BookingStatus(r.Status),
		Actor:           actor,
		RejectionReason: r.RejectionReason,
		AdminNotes:      r.AdminNotes,
	}
}

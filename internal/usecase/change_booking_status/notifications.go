package change_booking_status

import (
	"fmt"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/pkg/ptr"
)

// statusNotification собирает уведомление пациенту о новом статусе
func statusNotification(b *domain.Booking) *domain.Notification {
	when := fmt.Sprintf("%s в %s", b.BookingDate.Format(domain.DateFormat), b.StartTime)

	var title, message string
	switch b.Status {
	case domain.StatusConfirmed:
		title = "Бронирование подтверждено"
		message = fmt.Sprintf("Визит %s на %s подтвержден.", b.BookingCode, when)
	case domain.StatusScheduled:
		title = "Визит запланирован"
		message = fmt.Sprintf("Специалист назначен на визит %s (%s).", b.BookingCode, when)
	case domain.StatusEnRoute:
		title = "Специалист в пути"
		message = fmt.Sprintf("Специалист выехал к вам по бронированию %s.", b.BookingCode)
	case domain.StatusInProgress:
		title = "Визит начался"
		message = fmt.Sprintf("Визит %s начался.", b.BookingCode)
	case domain.StatusCompleted:
		title = "Визит завершен"
		message = fmt.Sprintf("Визит %s завершен. Оцените, пожалуйста, работу специалиста.", b.BookingCode)
	case domain.StatusRejected:
		title = "Бронирование отклонено"
		message = fmt.Sprintf("Бронирование %s на %s отклонено. Причина: %s.", b.BookingCode, when, rejectionReason(b))
	case domain.StatusCancelledByPatient:
		title = "Бронирование отменено"
		message = fmt.Sprintf("Вы отменили бронирование %s на %s.", b.BookingCode, when)
	case domain.StatusCancelledBySystem:
		title = "Бронирование отменено клиникой"
		message = fmt.Sprintf("Клиника отменила бронирование %s на %s.", b.BookingCode, when)
	default:
		title = "Статус бронирования изменен"
		message = fmt.Sprintf("Новый статус бронирования %s: %s.", b.BookingCode, b.Status)
	}

	return &domain.Notification{
		UserID:    b.PatientID,
		BookingID: ptr.Ptr(b.ID),
		Type:      domain.NotificationBooking,
		Title:     title,
		Message:   message,
	}
}

func rejectionReason(b *domain.Booking) string {
	if b.RejectionReason == nil || *b.RejectionReason == "" {
		return DefaultRejectionReason
	}
	return *b.RejectionReason
}

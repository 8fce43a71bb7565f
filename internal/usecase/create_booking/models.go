package create_booking

import (
	"time"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	PatientID     int64                // ID пациента
	ServiceID     int64                // ID услуги из каталога
	Date          time.Time            // Дата визита (без времени)
	StartTime     types.TimeString     // Время начала слота (например, "10:00")
	Address       string               // Адрес визита
	Coordinates   *string              // Координаты "lat,lng" (опционально)
	Complaint     string               // Жалоба пациента
	Notes         *string              // Дополнительные заметки (опционально)
	PaymentMethod domain.PaymentMethod // Способ оплаты, по умолчанию cash_on_visit
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
	Payment *domain.Payment
}

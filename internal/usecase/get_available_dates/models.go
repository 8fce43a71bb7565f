package get_available_dates

import (
	"time"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

// Request модель запроса на получение дат со свободными слотами
type Request struct {
	StartDate *time.Time // Начало периода (по умолчанию сегодня)
	EndDate   *time.Time // Конец периода (по умолчанию сегодня + advanceBookingDays)
}

// Response модель ответа
type Response struct {
	StartDate time.Time
	EndDate   time.Time
	Dates     []domain.DateAvailability // Только даты, где есть хотя бы один слот
}

package get_available_slots

import (
	"time"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date time.Time // Дата (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date  time.Time     // Дата
	Slots []domain.Slot // Свободные слоты, которые еще можно забронировать
}

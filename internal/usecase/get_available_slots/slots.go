package get_available_slots

import (
	"time"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

// filterBookable оставляет слоты, начало которых строго позже now + minHoursBeforeBooking.
// Это же отсекает прошедшие слоты
func filterBookable(slots []domain.Slot, now time.Time, rules domain.BookingRules) ([]domain.Slot, error) {
	earliest := rules.EarliestBookable(now)

	result := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		instant, err := rules.SlotInstant(slot.Date, slot.StartTime)
		if err != nil {
			return nil, err
		}
		if instant.After(earliest) {
			result = append(result, slot)
		}
	}
	return result, nil
}

package slotgen

import (
	"time"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/pkg/types"
)

// BuildSlots строит слоты на дату по записи шаблона.
// Слоты идут от начала рабочего окна с шагом duration, в результат попадают только
// целые слоты (конец слота не позже конца окна). Для выходного дня результат пустой.
func BuildSlots(entry *domain.WeeklyScheduleEntry, date time.Time, duration int) ([]domain.Slot, error) {
	if entry == nil || !entry.IsActive || duration <= 0 {
		return []domain.Slot{}, nil
	}

	date = domain.DateOnly(date)
	slots := make([]domain.Slot, 0)
	current := entry.StartTime

	for current.IsBefore(entry.EndTime) {
		slotEnd, err := current.AddMinutes(duration)
		if err != nil {
			// Слот переходит через полночь
			break
		}
		if slotEnd.IsAfter(entry.EndTime) {
			break
		}

		slots = append(slots, domain.Slot{
			Date:      date,
			StartTime: current,
			EndTime:   slotEnd,
			Status:    domain.SlotAvailable,
		})
		current = slotEnd
	}

	return slots, nil
}

// startTimes возвращает времена начала слотов
func startTimes(slots []domain.Slot) []types.TimeString {
	result := make([]types.TimeString, len(slots))
	for i, s := range slots {
		result[i] = s.StartTime
	}
	return result
}

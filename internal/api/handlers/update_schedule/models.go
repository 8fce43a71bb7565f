package update_schedule

import (
	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/pkg/types"
)

// UpdateScheduleRequest HTTP request model, все поля опциональны
type UpdateScheduleRequest struct {
	StartTime *string `json:"startTime,omitempty"` // "08:00"
	EndTime   *string `json:"endTime,omitempty"`   // "22:00"
	IsActive  *bool   `json:"isActive,omitempty"`
}

// ToDomainUpdate конвертирует HTTP request в частичное обновление шаблона.
// Формат времени проверяет сервис
func (r *UpdateScheduleRequest) ToDomainUpdate() domain.WeeklyScheduleUpdate {
	update := domain.WeeklyScheduleUpdate{IsActive: r.IsActive}
	if r.StartTime != nil {
		start := types.TimeString(*r.StartTime)
		update.StartTime = &start
	}
	if r.EndTime != nil {
		end := types.TimeString(*r.EndTime)
		update.EndTime = &end
	}
	return update
}

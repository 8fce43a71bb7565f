package toggle_schedule

import (
	"context"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

type ScheduleService interface {
	ToggleActive(ctx context.Context, day domain.Weekday) (*domain.WeeklyScheduleEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

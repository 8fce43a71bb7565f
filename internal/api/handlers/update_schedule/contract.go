package update_schedule

import (
	"context"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

type ScheduleService interface {
	Update(ctx context.Context, day domain.Weekday, update domain.WeeklyScheduleUpdate) (*domain.WeeklyScheduleEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

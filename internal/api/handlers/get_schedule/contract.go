package get_schedule

import (
	"context"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

type ScheduleService interface {
	GetAll(ctx context.Context) ([]domain.WeeklyScheduleEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

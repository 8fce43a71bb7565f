package schedule

import (
	"context"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

// Repository интерфейс репозитория недельного шаблона
type Repository interface {
	GetAll(ctx context.Context) ([]domain.WeeklyScheduleEntry, error)
	GetByWeekday(ctx context.Context, day domain.Weekday) (*domain.WeeklyScheduleEntry, error)
	Update(ctx context.Context, day domain.Weekday, update domain.WeeklyScheduleUpdate) (*domain.WeeklyScheduleEntry, error)
	ToggleActive(ctx context.Context, day domain.Weekday) (*domain.WeeklyScheduleEntry, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package slotgen

import (
	"context"
	"time"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория недельного шаблона
type ScheduleRepository interface {
	GetByWeekday(ctx context.Context, day domain.Weekday) (*domain.WeeklyScheduleEntry, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CountByDate(ctx context.Context, date time.Time) (int, error)
	CreateMissing(ctx context.Context, slots []domain.Slot) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

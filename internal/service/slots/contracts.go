package slots

import (
	"context"
	"time"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]domain.Slot, error)
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	Block(ctx context.Context, id int64, note *string) error
	Unblock(ctx context.Context, id int64) error
	SetHoliday(ctx context.Context, date time.Time, note *string) (int64, error)
	CancelHoliday(ctx context.Context, date time.Time) (int64, error)
	DeleteAvailableByDate(ctx context.Context, date time.Time) (int64, error)
}

// Generator интерфейс генератора слотов
type Generator interface {
	EnsureForDate(ctx context.Context, date time.Time) (int, error)
	GenerateForRange(ctx context.Context, start, end time.Time) ([]domain.SlotGeneration, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

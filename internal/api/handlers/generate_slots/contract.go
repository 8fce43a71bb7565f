package generate_slots

import (
	"context"
	"time"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

type SlotService interface {
	GenerateForRange(ctx context.Context, start, end time.Time) ([]domain.SlotGeneration, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

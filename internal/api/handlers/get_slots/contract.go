package get_slots

import (
	"context"
	"time"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

type SlotService interface {
	GetByDate(ctx context.Context, date time.Time) ([]domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

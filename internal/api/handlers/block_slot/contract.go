package block_slot

import (
	"context"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

type SlotService interface {
	Block(ctx context.Context, id int64, note *string) (*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package unblock_slot

import (
	"context"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

type SlotService interface {
	Unblock(ctx context.Context, id int64) (*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package prune_slots

import (
	"context"
	"time"
)

type SlotService interface {
	DeleteAvailable(ctx context.Context, date time.Time) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

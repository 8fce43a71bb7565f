package set_holiday

import (
	"context"
	"time"
)

type SlotService interface {
	SetHoliday(ctx context.Context, date time.Time, note *string) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package cancel_holiday

import (
	"context"
	"time"
)

type SlotService interface {
	CancelHoliday(ctx context.Context, date time.Time) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

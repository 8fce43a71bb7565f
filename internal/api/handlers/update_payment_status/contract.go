package update_payment_status

import (
	"context"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

type PaymentService interface {
	UpdateStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus, notes *string) (*domain.Payment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package change_payment_method

import (
	"context"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

type PaymentService interface {
	ChangeMethod(ctx context.Context, bookingID int64, method domain.PaymentMethod, actor domain.Actor) (*domain.Payment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

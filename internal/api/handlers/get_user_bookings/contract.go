package get_user_bookings

import (
	"context"

	"github.com/m04kA/HomeCare-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	ListForPatient(ctx context.Context, patientID int64, status *string) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

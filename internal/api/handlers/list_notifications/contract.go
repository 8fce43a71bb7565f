package list_notifications

import (
	"context"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

type NotificationService interface {
	List(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.Notification, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package mark_notification_read

import "context"

type NotificationService interface {
	MarkAsRead(ctx context.Context, id, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

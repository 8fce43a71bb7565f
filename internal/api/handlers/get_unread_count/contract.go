package get_unread_count

import "context"

type NotificationService interface {
	CountUnread(ctx context.Context, userID int64) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

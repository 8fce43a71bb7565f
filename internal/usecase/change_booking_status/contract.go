package change_booking_status

import (
	"context"
	"time"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, expected domain.BookingStatus, update domain.BookingStatusUpdate) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ReleaseByBooking(ctx context.Context, bookingID int64) (int64, error)
}

// Notifier интерфейс отправки уведомлений пользователям
type Notifier interface {
	Notify(ctx context.Context, n *domain.Notification) error
}

// EmailSink интерфейс отправки писем
type EmailSink interface {
	SendBookingEmail(ctx context.Context, booking *domain.Booking, kind domain.EmailKind, extra map[string]string) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package mailqueue

import (
	"context"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

// LogSink пишет письма в лог, когда очередь отключена
type LogSink struct {
	adminEmail string
	log        Logger
}

// NewLogSink создает sink для локального запуска
func NewLogSink(adminEmail string, log Logger) *LogSink {
	return &LogSink{adminEmail: adminEmail, log: log}
}

// SendBookingEmail логирует письмо вместо отправки
func (s *LogSink) SendBookingEmail(_ context.Context, booking *domain.Booking, kind domain.EmailKind, extra map[string]string) error {
	msg := NewEmailMessage(booking, kind, extra, s.adminEmail, booking.UpdatedAt)
	s.log.Info("MailQueue disabled: kind=%s, audience=%s, booking=%s, extra=%v",
		msg.Kind, msg.Audience, msg.Booking.BookingCode, msg.Extra)
	return nil
}

// Close ничего не делает
func (s *LogSink) Close() error {
	return nil
}

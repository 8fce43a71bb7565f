package mailqueue

import (
	"context"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Channel часть amqp.Channel, нужная для публикации
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Audience получатель письма
type Audience string

const (
	AudienceAdmin   Audience = "admin"
	AudiencePatient Audience = "patient"
)

// EmailMessage задание на отправку письма для сервиса рассылки
type EmailMessage struct {
	ID              uuid.UUID         `json:"id"`
	Kind            domain.EmailKind  `json:"kind"`
	Audience        Audience          `json:"audience"`
	RecipientEmail  string            `json:"recipientEmail,omitempty"`
	RecipientUserID int64             `json:"recipientUserId,omitempty"`
	Booking         BookingSnapshot   `json:"booking"`
	Extra           map[string]string `json:"extra,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// BookingSnapshot данные бронирования для шаблона письма
type BookingSnapshot struct {
	ID            int64           `json:"id"`
	BookingCode   string          `json:"bookingCode"`
	PatientID     int64           `json:"patientId"`
	ServiceName   string          `json:"serviceName"`
	ServicePrice  decimal.Decimal `json:"servicePrice"`
	BookingDate   string          `json:"bookingDate"`
	StartTime     string          `json:"startTime"`
	Address       string          `json:"address"`
	Complaint     string          `json:"complaint"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod"`
}

// NewEmailMessage собирает письмо по бронированию. Оповещение о новой записи уходит
// администратору, остальные письма пациенту
func NewEmailMessage(booking *domain.Booking, kind domain.EmailKind, extra map[string]string, adminEmail string, now time.Time) EmailMessage {
	msg := EmailMessage{
		ID:   uuid.New(),
		Kind: kind,
		Booking: BookingSnapshot{
			ID:            booking.ID,
			BookingCode:   booking.BookingCode,
			PatientID:     booking.PatientID,
			ServiceName:   booking.ServiceName,
			ServicePrice:  booking.ServicePrice,
			BookingDate:   booking.BookingDate.Format(domain.DateFormat),
			StartTime:     booking.StartTime.String(),
			Address:       booking.Address,
			Complaint:     booking.Complaint,
			Status:        string(booking.Status),
			PaymentMethod: string(booking.PaymentMethod),
		},
		Extra:     extra,
		CreatedAt: now,
	}

	if kind == domain.EmailNewBookingAdminAlert {
		msg.Audience = AudienceAdmin
		msg.RecipientEmail = adminEmail
	} else {
		msg.Audience = AudiencePatient
		msg.RecipientUserID = booking.PatientID
	}
	return msg
}

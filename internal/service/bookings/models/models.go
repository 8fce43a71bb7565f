package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	PatientID *int64     `json:"patientId,omitempty"` // Только бронирования пациента (опционально)
	Status    *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
	Limit     int        `json:"limit,omitempty"`
	Offset    int        `json:"offset,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingFilter, error) {
	filter := domain.BookingFilter{
		PatientID: r.PatientID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Limit:     r.Limit,
		Offset:    r.Offset,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// PaymentResponse ответ с данными оплаты
type PaymentResponse struct {
	ID        int64           `json:"id"`
	BookingID int64           `json:"bookingId"`
	Method    string          `json:"method"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    *time.Time      `json:"paidAt,omitempty"`
	Notes     *string         `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	BookingCode     string  `json:"bookingCode"`
	PatientID       int64   `json:"patientId"`
	ServiceID       int64   `json:"serviceId"`
	BookingDate     string  `json:"bookingDate"` // "2026-03-06"
	StartTime       string  `json:"startTime"`   // "09:00"
	DurationMinutes int     `json:"durationMinutes"`
	Address         string  `json:"address"`
	Coordinates     *string `json:"coordinates,omitempty"`
	Complaint       string  `json:"complaint"`
	Notes           *string `json:"notes,omitempty"`
	Status          string  `json:"status"`
	PaymentMethod   string  `json:"paymentMethod"`

	// Денормализованные данные
	ServiceName  string          `json:"serviceName"`
	ServicePrice decimal.Decimal `json:"servicePrice"`

	RejectionReason *string    `json:"rejectionReason,omitempty"`
	AdminNotes      *string    `json:"adminNotes,omitempty"`
	ConfirmedAt     *time.Time `json:"confirmedAt,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`

	Rating     *int       `json:"rating,omitempty"`
	Review     *string    `json:"review,omitempty"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`

	Payment *PaymentResponse `json:"payment,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainPayment конвертирует domain модель оплаты в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}
	return &PaymentResponse{
		ID:        p.ID,
		BookingID: p.BookingID,
		Method:    string(p.Method),
		Status:    string(p.Status),
		Amount:    p.Amount,
		PaidAt:    p.PaidAt,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// FromDomainBooking конвертирует domain модель в DTO. payment может быть nil
func FromDomainBooking(b *domain.Booking, payment *domain.Payment) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		BookingCode:     b.BookingCode,
		PatientID:       b.PatientID,
		ServiceID:       b.ServiceID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Address:         b.Address,
		Coordinates:     b.Coordinates,
		Complaint:       b.Complaint,
		Notes:           b.Notes,
		Status:          string(b.Status),
		PaymentMethod:   string(b.PaymentMethod),
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		RejectionReason: b.RejectionReason,
		AdminNotes:      b.AdminNotes,
		ConfirmedAt:     b.ConfirmedAt,
		CompletedAt:     b.CompletedAt,
		CancelledAt:     b.CancelledAt,
		Rating:          b.Rating,
		Review:          b.Review,
		ReviewedAt:      b.ReviewedAt,
		Payment:         FromDomainPayment(payment),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, nil); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

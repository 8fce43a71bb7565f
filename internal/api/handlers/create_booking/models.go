package create_booking

import (
	"errors"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/HomeCare-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/HomeCare-BookingService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID     int64   `json:"serviceId"`
	BookingDate   string  `json:"bookingDate"` // "2026-03-06"
	StartTime     string  `json:"startTime"`   // "09:00"
	Address       string  `json:"address"`
	Coordinates   *string `json:"coordinates,omitempty"`
	Complaint     string  `json:"complaint"`
	Notes         *string `json:"notes,omitempty"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(patientID int64) (*createBooking.Request, error) {
	bookingDate, err := domain.ParseDate(r.BookingDate)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createBooking.Request{
		PatientID:     patientID,
		ServiceID:     r.ServiceID,
		Date:          bookingDate,
		StartTime:     startTime,
		Address:       r.Address,
		Coordinates:   r.Coordinates,
		Complaint:     r.Complaint,
		Notes:         r.Notes,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingResponse {
	return models.FromDomainBooking(resp.Booking, resp.Payment)
}

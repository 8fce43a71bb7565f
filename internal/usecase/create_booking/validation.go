package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PatientID <= 0 {
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.Address) == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	if len(req.Address) > domain.MaxAddressLength {
		return fmt.Errorf("%w: address exceeds %d characters", ErrInvalidInput, domain.MaxAddressLength)
	}

	if strings.TrimSpace(req.Complaint) == "" {
		return fmt.Errorf("%w: complaint is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.PaymentMethod != "" && !req.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}

	return nil
}

// validateService проверяет, что услугу можно забронировать
func validateService(service *domain.Service) error {
	if !service.IsActive {
		return fmt.Errorf("%w: id=%d", ErrServiceInactive, service.ID)
	}
	return nil
}

// validateBookingTime проверяет минимальное время до визита и окно предварительной записи
func validateBookingTime(instant, now time.Time, rules domain.BookingRules) error {
	if earliest := rules.EarliestBookable(now); instant.Before(earliest) {
		return fmt.Errorf("%w: visit at %s, earliest allowed %s",
			ErrTooSoon, instant.Format(time.RFC3339), earliest.Format(time.RFC3339))
	}

	if latest := rules.LatestBookable(now); instant.After(latest) {
		return fmt.Errorf("%w: visit at %s, latest allowed %s",
			ErrTooFarAhead, instant.Format(time.RFC3339), latest.Format(time.RFC3339))
	}

	return nil
}

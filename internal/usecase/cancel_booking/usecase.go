package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/HomeCare-BookingService/internal/usecase/change_booking_status"
)

// UseCase use case для отмены бронирования пациентом
type UseCase struct {
	bookingRepo   BookingRepository
	statusChanger StatusChanger
	rules         domain.BookingRules
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	statusChanger StatusChanger,
	rules domain.BookingRules,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		bookingRepo:   bookingRepo,
		statusChanger: statusChanger,
		rules:         rules,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	if req.BookingID <= 0 || req.PatientID <= 0 {
		return nil, fmt.Errorf("%w: booking id and patient id must be positive", ErrInvalidInput)
	}

	// 1. Загружаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: booking=%d", ErrBookingNotFound, req.BookingID)
		}
		uc.logger.Error("CancelBooking: failed to get booking=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 2. Отменить может только владелец
	if !booking.IsOwnedBy(req.PatientID) {
		uc.logger.Warn("CancelBooking: user=%d tried to cancel booking=%d of patient=%d", req.PatientID, booking.ID, booking.PatientID)
		return nil, fmt.Errorf("%w: booking=%d", ErrAccessDenied, booking.ID)
	}

	// 3. Проверяем статус
	if !booking.CanBeCancelledByPatient() {
		return nil, fmt.Errorf("%w: status=%s", ErrNotCancellable, booking.Status)
	}

	// 4. Проверяем окно отмены: визит должен начинаться строго позже now + cancellationHours
	instant, err := uc.rules.SlotInstant(booking.BookingDate, booking.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !uc.timeProvider.Now().Before(uc.rules.CancellationDeadline(instant)) {
		return nil, fmt.Errorf("%w: cancellation is allowed at least %d hours before the visit", ErrTooLateToCancel, uc.rules.CancellationHours)
	}

	// 5. Переводим в cancelled_by_patient через машину состояний
	updated, err := uc.statusChanger.Execute(ctx, &change_booking_status.Request{
		BookingID: booking.ID,
		Status:    domain.StatusCancelledByPatient,
		Actor:     domain.Actor{UserID: req.PatientID, Role: domain.RolePatient},
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking=%s cancelled by patient=%d", updated.BookingCode, req.PatientID)
	return updated, nil
}

package change_booking_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/booking"
)

// UseCase use case для смены статуса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	notifier     Notifier
	emailSink    EmailSink
	provider     ProviderContact
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	notifier Notifier,
	emailSink EmailSink,
	provider ProviderContact,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		notifier:     notifier,
		emailSink:    emailSink,
		provider:     provider,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case смены статуса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, req.Status)
	}

	// 1. Загружаем бронирование
	booking, err := uc.loadBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	// 2. Проверяем права
	if !req.Actor.IsAdmin() {
		if req.Status != domain.StatusCancelledByPatient || !booking.IsOwnedBy(req.Actor.UserID) {
			uc.logger.Warn("ChangeBookingStatus: user=%d denied status=%s for booking=%d", req.Actor.UserID, req.Status, booking.ID)
			return nil, fmt.Errorf("%w: booking=%d", ErrAccessDenied, booking.ID)
		}
	}

	// 3. Проверяем переход по таблице
	if err := domain.ValidateTransition(booking.Status, req.Status); err != nil {
		return nil, err
	}

	// 4. Условное обновление статуса
	update := domain.NewBookingStatusUpdate(req.Status, uc.timeProvider.Now())
	if req.Status == domain.StatusRejected {
		update.RejectionReason = req.RejectionReason
	}
	update.AdminNotes = req.AdminNotes

	if err := uc.bookingRepo.UpdateStatus(ctx, booking.ID, booking.Status, update); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, fmt.Errorf("%w: booking=%d", ErrBookingNotFound, booking.ID)
		case errors.Is(err, bookingRepo.ErrStatusChanged):
			uc.logger.Warn("ChangeBookingStatus: booking=%d changed concurrently, expected status=%s", booking.ID, booking.Status)
			return nil, fmt.Errorf("%w: booking=%d", ErrConcurrentUpdate, booking.ID)
		}
		uc.logger.Error("ChangeBookingStatus: failed to update booking=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}
	uc.logger.Info("ChangeBookingStatus: booking=%s %s -> %s by user=%d", booking.BookingCode, booking.Status, req.Status, req.Actor.UserID)
	update.Apply(booking)

	// 5. Побочные эффекты не откатывают смену статуса
	uc.applySideEffects(ctx, booking)

	// 6. Возвращаем актуальное состояние
	updated, err := uc.loadBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (uc *UseCase) loadBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: booking=%d", ErrBookingNotFound, id)
		}
		uc.logger.Error("ChangeBookingStatus: failed to get booking=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return booking, nil
}

func (uc *UseCase) applySideEffects(ctx context.Context, booking *domain.Booking) {
	if err := uc.notifier.Notify(ctx, statusNotification(booking)); err != nil {
		uc.logger.Error("ChangeBookingStatus: failed to notify patient=%d: %v", booking.PatientID, err)
	}

	if booking.Status.ReleasesSlot() {
		released, err := uc.slotRepo.ReleaseByBooking(ctx, booking.ID)
		if err != nil {
			uc.logger.Error("ChangeBookingStatus: failed to release slot for booking=%d: %v", booking.ID, err)
		} else {
			uc.logger.Info("ChangeBookingStatus: released %d slot(s) for booking=%d", released, booking.ID)
		}
	}

	var (
		kind  domain.EmailKind
		extra map[string]string
	)
	switch booking.Status {
	case domain.StatusConfirmed:
		kind, extra = domain.EmailBookingConfirmed, uc.provider.extra()
	case domain.StatusRejected:
		kind, extra = domain.EmailBookingRejected, map[string]string{"reason": rejectionReason(booking)}
	default:
		return
	}
	if err := uc.emailSink.SendBookingEmail(ctx, booking, kind, extra); err != nil {
		uc.logger.Error("ChangeBookingStatus: failed to send %s email for booking=%s: %v", kind, booking.BookingCode, err)
	}
}

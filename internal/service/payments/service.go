package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/payment"
	"github.com/m04kA/HomeCare-BookingService/pkg/ptr"
)

// Service сервис оплат. Статус оплаты меняет только администратор, платежного шлюза нет
type Service struct {
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	notifier Notifier,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Service{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByBooking возвращает оплату бронирования владельцу или администратору
func (s *Service) GetByBooking(ctx context.Context, bookingID int64, actor domain.Actor) (*domain.Payment, error) {
	booking, err := s.getBooking(ctx, "GetPayment", bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBooking(booking) {
		s.logger.Warn("GetPayment: access denied for user=%d to booking id=%d", actor.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	return s.getPayment(ctx, "GetPayment", bookingID)
}

// UpdateStatus меняет статус оплаты (администратор).
// paid проставляет время оплаты, paid и failed уведомляют пациента
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus, notes *string) (*domain.Payment, error) {
	s.logger.Info("UpdatePaymentStatus: booking=%d, status=%s", bookingID, status)

	// 1. Валидация входных данных
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, status)
	}
	if notes != nil && len(*notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	// 2. Проверяем бронирование
	booking, err := s.getBooking(ctx, "UpdatePaymentStatus", bookingID)
	if err != nil {
		return nil, err
	}

	// 3. Обновляем оплату
	update := domain.PaymentUpdate{Status: &status, Notes: notes}
	if status == domain.PaymentPaid {
		update.PaidAt = ptr.Ptr(s.timeProvider.Now())
	}

	payment, err := s.paymentRepo.UpdateByBookingID(ctx, bookingID, update)
	if err != nil {
		return nil, s.mapPaymentError("UpdatePaymentStatus", bookingID, err)
	}

	// 4. Уведомляем пациента (ошибки только логируем)
	if n := paymentNotification(booking, status); n != nil {
		if err := s.notifier.Notify(ctx, n); err != nil {
			s.logger.Error("UpdatePaymentStatus: failed to notify user=%d: %v", booking.PatientID, err)
		}
	}

	s.logger.Info("UpdatePaymentStatus: booking=%d payment id=%d now %s", bookingID, payment.ID, payment.Status)
	return payment, nil
}

// ChangeMethod меняет способ оплаты по запросу пациента, пока бронирование ожидает подтверждения
func (s *Service) ChangeMethod(ctx context.Context, bookingID int64, method domain.PaymentMethod, actor domain.Actor) (*domain.Payment, error) {
	s.logger.Info("ChangePaymentMethod: booking=%d, method=%s, user=%d", bookingID, method, actor.UserID)

	// 1. Валидация входных данных
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, method)
	}

	// 2. Проверяем владельца и статус
	booking, err := s.getBooking(ctx, "ChangePaymentMethod", bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsOwnedBy(actor.UserID) {
		s.logger.Warn("ChangePaymentMethod: access denied for user=%d to booking id=%d", actor.UserID, bookingID)
		return nil, ErrAccessDenied
	}
	if booking.Status != domain.StatusPendingConfirmation {
		s.logger.Warn("ChangePaymentMethod: booking id=%d has status %s", bookingID, booking.Status)
		return nil, fmt.Errorf("%w: current status %s", ErrCannotChangeMethod, booking.Status)
	}

	// 3. Бронирование и оплата меняются вместе
	var payment *domain.Payment
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.UpdatePaymentMethod(txCtx, bookingID, method); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				return ErrCannotChangeMethod
			}
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: ChangeMethod - update booking: %v", ErrInternal, err)
		}

		updated, err := s.paymentRepo.UpdateByBookingID(txCtx, bookingID, domain.PaymentUpdate{Method: &method})
		if err != nil {
			return s.mapPaymentError("ChangePaymentMethod", bookingID, err)
		}
		payment = updated
		return nil
	})
	if err != nil {
		s.logger.Warn("ChangePaymentMethod: booking=%d failed: %v", bookingID, err)
		return nil, err
	}

	return payment, nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) getPayment(ctx context.Context, op string, bookingID int64) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, s.mapPaymentError(op, bookingID, err)
	}
	return payment, nil
}

func (s *Service) mapPaymentError(op string, bookingID int64, err error) error {
	if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
		s.logger.Warn("%s: payment for booking id=%d not found", op, bookingID)
		return ErrPaymentNotFound
	}
	s.logger.Error("%s: repository error for payment of booking id=%d: %v", op, bookingID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func paymentNotification(booking *domain.Booking, status domain.PaymentStatus) *domain.Notification {
	n := &domain.Notification{
		UserID:    booking.PatientID,
		BookingID: ptr.Ptr(booking.ID),
		Type:      domain.NotificationPayment,
	}

	switch status {
	case domain.PaymentPaid:
		n.Title = "Оплата получена"
		n.Message = fmt.Sprintf("Оплата по бронированию %s подтверждена. Спасибо!", booking.BookingCode)
	case domain.PaymentFailed:
		n.Title = "Проблема с оплатой"
		n.Message = fmt.Sprintf("Оплата по бронированию %s не прошла. Свяжитесь с клиникой.", booking.BookingCode)
	default:
		return nil
	}
	return n
}

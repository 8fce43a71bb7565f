package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/payment"
	"github.com/m04kA/HomeCare-BookingService/internal/service/bookings/models"
	"github.com/m04kA/HomeCare-BookingService/pkg/ptr"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	slotRepo     SlotRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	slotRepo SlotRepository,
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
		slotRepo:     slotRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID вместе с оплатой
// Пациент видит только свои бронирования, администратор - все
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapBookingError("GetByID", fmt.Sprintf("id=%d", id), err)
	}

	return s.withAccess(ctx, "GetByID", booking, actor)
}

// GetByCode получает бронирование по коду (например, CVA-20260306-001)
func (s *Service) GetByCode(ctx context.Context, code string, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByCode: fetching booking code=%s for user=%d", code, actor.UserID)

	if code == "" {
		return nil, fmt.Errorf("%w: empty booking code", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, s.mapBookingError("GetByCode", "code="+code, err)
	}

	return s.withAccess(ctx, "GetByCode", booking, actor)
}

// ListForPatient возвращает историю бронирований пациента
// Опционально фильтрует по статусу
func (s *Service) ListForPatient(ctx context.Context, patientID int64, status *string) (*models.BookingListResponse, error) {
	s.logger.Info("ListForPatient: fetching bookings for user=%d, status=%v", patientID, status)

	return s.list(ctx, "ListForPatient", &models.ListBookingsRequest{
		PatientID: ptr.Ptr(patientID),
		Status:    status,
	})
}

// ListAll возвращает бронирования всех пациентов (администратор)
// Поддерживает фильтрацию по статусу, периоду и постраничный вывод
func (s *Service) ListAll(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "ListAll: fetching bookings"
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	s.logger.Info(logMsg)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}
	if req.Limit < 0 || req.Offset < 0 {
		return nil, fmt.Errorf("%w: negative paging", ErrInvalidInput)
	}

	return s.list(ctx, "ListAll", req)
}

// AddRating сохраняет оценку пациента (1..5) и отзыв для завершенного визита
// Оценить можно только один раз
func (s *Service) AddRating(ctx context.Context, id int64, actor domain.Actor, rating int, review *string) (*models.BookingResponse, error) {
	s.logger.Info("AddRating: booking id=%d, user=%d, rating=%d", id, actor.UserID, rating)

	// 1. Валидация входных данных
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
	}
	if review != nil && len(*review) > domain.MaxReviewLength {
		return nil, fmt.Errorf("%w: review exceeds %d characters", ErrInvalidInput, domain.MaxReviewLength)
	}

	// 2. Проверяем владельца и статус
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapBookingError("AddRating", fmt.Sprintf("id=%d", id), err)
	}
	if !booking.IsOwnedBy(actor.UserID) {
		s.logger.Warn("AddRating: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}
	if booking.Status != domain.StatusCompleted {
		s.logger.Warn("AddRating: booking id=%d has status %s", id, booking.Status)
		return nil, fmt.Errorf("%w: current status %s", ErrNotCompleted, booking.Status)
	}
	if booking.IsRated() {
		return nil, ErrAlreadyRated
	}

	// 3. Условное обновление: status = completed AND rating IS NULL
	if err := s.bookingRepo.AddRating(ctx, id, rating, review, s.timeProvider.Now()); err != nil {
		if errors.Is(err, bookingRepo.ErrCannotRate) {
			s.logger.Warn("AddRating: booking id=%d was rated concurrently", id)
			return nil, ErrAlreadyRated
		}
		return nil, s.mapBookingError("AddRating", fmt.Sprintf("id=%d", id), err)
	}

	// 4. Благодарим пациента (ошибки только логируем)
	notification := &domain.Notification{
		UserID:    booking.PatientID,
		BookingID: ptr.Ptr(booking.ID),
		Type:      domain.NotificationRating,
		Title:     "Спасибо за отзыв",
		Message:   fmt.Sprintf("Ваша оценка визита %s сохранена: %d из %d.", booking.BookingCode, rating, domain.MaxRating),
	}
	if err := s.notifier.Notify(ctx, notification); err != nil {
		s.logger.Error("AddRating: failed to notify user=%d: %v", booking.PatientID, err)
	}

	updated, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapBookingError("AddRating", fmt.Sprintf("id=%d", id), err)
	}

	s.logger.Info("AddRating: booking id=%d rated %d", id, rating)
	return models.FromDomainBooking(updated, nil), nil
}

// Delete удаляет бронирование (администратор): освобождает слот, удаляет оплату и бронирование
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("DeleteBooking: booking id=%d", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.bookingRepo.GetByID(txCtx, id); err != nil {
			return s.mapBookingError("DeleteBooking", fmt.Sprintf("id=%d", id), err)
		}

		released, err := s.slotRepo.ReleaseByBooking(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: DeleteBooking - release slot: %v", ErrInternal, err)
		}

		if err := s.paymentRepo.DeleteByBookingID(txCtx, id); err != nil {
			return fmt.Errorf("%w: DeleteBooking - delete payment: %v", ErrInternal, err)
		}

		if err := s.bookingRepo.Delete(txCtx, id); err != nil {
			return s.mapBookingError("DeleteBooking", fmt.Sprintf("id=%d", id), err)
		}

		s.logger.Info("DeleteBooking: booking id=%d deleted, released slots=%d", id, released)
		return nil
	})
	if err != nil {
		s.logger.Warn("DeleteBooking: booking id=%d failed: %v", id, err)
		return err
	}
	return nil
}

func (s *Service) withAccess(ctx context.Context, op string, booking *domain.Booking, actor domain.Actor) (*models.BookingResponse, error) {
	if !actor.CanAccessBooking(booking) {
		s.logger.Warn("%s: access denied for user=%d to booking id=%d", op, actor.UserID, booking.ID)
		return nil, ErrAccessDenied
	}

	payment, err := s.paymentRepo.GetByBookingID(ctx, booking.ID)
	if err != nil {
		if !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Error("%s: failed to get payment for booking id=%d: %v", op, booking.ID, err)
			return nil, fmt.Errorf("%w: %s - payment repository error: %v", ErrInternal, op, err)
		}
		s.logger.Warn("%s: booking id=%d has no payment", op, booking.ID)
		payment = nil
	}

	return models.FromDomainBooking(booking, payment), nil
}

func (s *Service) list(ctx context.Context, op string, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("%s: invalid status=%v", op, req.Status)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: fetched %d bookings", op, len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

func (s *Service) mapBookingError(op, key string, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking %s not found", op, key)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking %s: %v", op, key, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/slot"
	catalogClient "github.com/m04kA/HomeCare-BookingService/internal/integrations/catalog"
	"github.com/m04kA/HomeCare-BookingService/pkg/ptr"
	"github.com/m04kA/HomeCare-BookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	paymentRepo  PaymentRepository
	generator    SlotGenerator
	catalog      ServiceCatalog
	notifier     Notifier
	emailSink    EmailSink
	txManager    TransactionManager
	rules        domain.BookingRules
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	paymentRepo PaymentRepository,
	generator SlotGenerator,
	catalog ServiceCatalog,
	notifier Notifier,
	emailSink EmailSink,
	txManager TransactionManager,
	rules domain.BookingRules,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		paymentRepo:  paymentRepo,
		generator:    generator,
		catalog:      catalog,
		notifier:     notifier,
		emailSink:    emailSink,
		txManager:    txManager,
		rules:        rules,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка лимита, проверка слота, создание бронирования, захват слота и создание оплаты
// выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: patient=%d, service=%d, date=%s, time=%s",
		req.PatientID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	date := domain.DateOnly(req.Date)
	method := req.PaymentMethod
	if method == "" {
		method = domain.PaymentCashOnVisit
	}

	// 2. Получаем услугу из каталога
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, req.ServiceID)
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if err := validateService(service); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 3. Проверяем минимальное время до визита и окно записи
	now := uc.timeProvider.Now()
	instant, err := uc.rules.SlotInstant(date, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validateBookingTime(instant, now, uc.rules); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 4. Слоты на дату должны существовать до проверки
	if _, err := uc.generator.EnsureForDate(ctx, date); err != nil {
		uc.logger.Error("CreateBooking: failed to generate slots for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	var result Response

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Дневной лимит активных бронирований
		active, err := uc.bookingRepo.CountActiveByDate(txCtx, date)
		if err != nil {
			return fmt.Errorf("%w: failed to count bookings: %w", ErrInternal, err)
		}
		if active >= uc.rules.MaxBookingsPerDay {
			uc.logger.Warn("CreateBooking: date=%s is full, %d/%d", date.Format(domain.DateFormat), active, uc.rules.MaxBookingsPerDay)
			return fmt.Errorf("%w: %d of %d", ErrDateFull, active, uc.rules.MaxBookingsPerDay)
		}

		// 5.2. Слот существует и свободен
		slot, err := uc.slotRepo.GetByDateTime(txCtx, date, req.StartTime)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return fmt.Errorf("%w: no slot at %s %s", ErrSlotNotAvailable, date.Format(domain.DateFormat), req.StartTime)
			}
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}
		if !slot.IsAvailable() {
			return fmt.Errorf("%w: slot id=%d is %s", ErrSlotNotAvailable, slot.ID, slot.Status)
		}

		// 5.3. Создаем бронирование с денормализацией данных услуги
		booking, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			PatientID:       req.PatientID,
			ServiceID:       service.ID,
			BookingDate:     date,
			StartTime:       req.StartTime,
			DurationMinutes: uc.rules.SlotDurationMinutes,
			Address:         req.Address,
			Coordinates:     req.Coordinates,
			Complaint:       req.Complaint,
			Notes:           req.Notes,
			Status:          domain.StatusPendingConfirmation,
			PaymentMethod:   method,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateCode) {
				return ErrConcurrentBooking
			}
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		// 5.4. Захватываем слот (условный UPDATE закрывает гонку)
		if err := uc.slotRepo.Claim(txCtx, date, req.StartTime, booking.ID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotAvailable) {
				return fmt.Errorf("%w: claimed concurrently", ErrSlotNotAvailable)
			}
			return fmt.Errorf("%w: failed to claim slot: %w", ErrInternal, err)
		}

		// 5.5. Создаем запись об оплате
		payment, err := uc.paymentRepo.Create(txCtx, &domain.Payment{
			BookingID: booking.ID,
			Method:    method,
			Status:    domain.PaymentAwaiting,
			Amount:    service.Price,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create payment: %w", ErrInternal, err)
		}

		result = Response{Booking: booking, Payment: payment}
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization failure for date=%s time=%s", date.Format(domain.DateFormat), req.StartTime)
			return nil, fmt.Errorf("%w: %v", ErrConcurrentBooking, err)
		}
		if domain.KindOf(err) == domain.KindInternal {
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			if !errors.Is(err, ErrInternal) {
				return nil, fmt.Errorf("%w: %v", ErrInternal, err)
			}
		} else {
			uc.logger.Warn("CreateBooking: rejected: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, code=%s", result.Booking.ID, result.Booking.BookingCode)

	// 6. Уведомления после фиксации (ошибки только логируем)
	uc.notifyCreated(ctx, result.Booking)

	return &result, nil
}

func (uc *UseCase) notifyCreated(ctx context.Context, booking *domain.Booking) {
	notification := &domain.Notification{
		UserID:    booking.PatientID,
		BookingID: ptr.Ptr(booking.ID),
		Type:      domain.NotificationBooking,
		Title:     "Бронирование создано",
		Message: fmt.Sprintf("Бронирование %s на %s в %s ожидает подтверждения администратора.",
			booking.BookingCode, booking.BookingDate.Format(domain.DateFormat), booking.StartTime),
	}
	if err := uc.notifier.Notify(ctx, notification); err != nil {
		uc.logger.Error("CreateBooking: failed to notify patient=%d: %v", booking.PatientID, err)
	}

	if err := uc.emailSink.SendBookingEmail(ctx, booking, domain.EmailNewBookingAdminAlert, nil); err != nil {
		uc.logger.Error("CreateBooking: failed to send admin alert for booking=%s: %v", booking.BookingCode, err)
	}
}

package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	slotRepo     SlotRepository
	generator    SlotGenerator
	rules        domain.BookingRules
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	generator SlotGenerator,
	rules domain.BookingRules,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		slotRepo:     slotRepo,
		generator:    generator,
		rules:        rules,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date := domain.DateOnly(req.Date)

	// 2. Ленивая генерация слотов на дату
	if _, err := uc.generator.EnsureForDate(ctx, date); err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 3. Получаем свободные слоты
	slots, err := uc.slotRepo.ListAvailableByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list slots for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// 4. Отсекаем слоты ближе минимального времени до визита
	bookable, err := filterBookable(slots, uc.timeProvider.Now(), uc.rules)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: date=%s, available=%d of %d", date.Format(domain.DateFormat), len(bookable), len(slots))
	return &Response{Date: date, Slots: bookable}, nil
}

package get_available_dates

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/internal/usecase/get_available_slots"
)

// UseCase use case для получения дат со свободными слотами
type UseCase struct {
	slots        SlotsQuery
	rules        domain.BookingRules
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slots SlotsQuery, rules domain.BookingRules, timeProvider TimeProvider, logger Logger) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		slots:        slots,
		rules:        rules,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case получения дат со свободными слотами
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Определяем период
	today := uc.rules.Today(uc.timeProvider.Now())
	start := today
	if req.StartDate != nil {
		start = domain.DateOnly(*req.StartDate)
	}
	end := today.AddDate(0, 0, uc.rules.AdvanceBookingDays)
	if req.EndDate != nil {
		end = domain.DateOnly(*req.EndDate)
	}

	// 2. Валидация периода
	if end.Before(start) {
		return nil, fmt.Errorf("%w: start=%s, end=%s", ErrInvalidRange, start.Format(domain.DateFormat), end.Format(domain.DateFormat))
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > domain.MaxAvailabilityRangeDays {
		return nil, fmt.Errorf("%w: %d days, max %d", ErrRangeTooLong, days, domain.MaxAvailabilityRangeDays)
	}

	// 3. Для каждой даты считаем доступные слоты
	dates := make([]domain.DateAvailability, 0)
	for _, date := range domain.DatesBetween(start, end) {
		resp, err := uc.slots.Execute(ctx, &get_available_slots.Request{Date: date})
		if err != nil {
			uc.logger.Error("GetAvailableDates: failed to get slots for date=%s: %v", date.Format(domain.DateFormat), err)
			if errors.Is(err, get_available_slots.ErrInternal) {
				return nil, fmt.Errorf("%w: %v", ErrInternal, err)
			}
			return nil, err
		}
		if len(resp.Slots) > 0 {
			dates = append(dates, domain.DateAvailability{Date: date, AvailableSlots: len(resp.Slots)})
		}
	}

	uc.logger.Info("GetAvailableDates: start=%s, end=%s, dates=%d", start.Format(domain.DateFormat), end.Format(domain.DateFormat), len(dates))
	return &Response{StartDate: start, EndDate: end, Dates: dates}, nil
}

package slotgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/schedule"
)

// Generator материализует слоты из недельного шаблона
type Generator struct {
	scheduleRepo ScheduleRepository
	slotRepo     SlotRepository
	duration     int
	logger       Logger
}

// NewGenerator создает генератор с длительностью слота в минутах
func NewGenerator(scheduleRepo ScheduleRepository, slotRepo SlotRepository, duration int, logger Logger) *Generator {
	if duration <= 0 {
		duration = domain.DefaultSlotDurationMinutes
	}
	return &Generator{
		scheduleRepo: scheduleRepo,
		slotRepo:     slotRepo,
		duration:     duration,
		logger:       logger,
	}
}

// EnsureForDate создает слоты на дату, если их еще нет, и возвращает количество слотов на дату.
// Повторный вызов ничего не меняет.
func (g *Generator) EnsureForDate(ctx context.Context, date time.Time) (int, error) {
	date = domain.DateOnly(date)

	// 1. Если слоты уже есть - ничего не делаем
	existing, err := g.slotRepo.CountByDate(ctx, date)
	if err != nil {
		g.logger.Error("EnsureSlots: failed to count slots for date=%s: %v", date.Format(domain.DateFormat), err)
		return 0, fmt.Errorf("%w: count slots: %v", ErrInternal, err)
	}
	if existing > 0 {
		return existing, nil
	}

	// 2. Берем запись шаблона на день недели
	weekday := domain.WeekdayOf(date)
	entry, err := g.scheduleRepo.GetByWeekday(ctx, weekday)
	if err != nil && !errors.Is(err, scheduleRepo.ErrEntryNotFound) {
		g.logger.Error("EnsureSlots: failed to get schedule for weekday=%s: %v", weekday, err)
		return 0, fmt.Errorf("%w: get schedule: %v", ErrInternal, err)
	}

	// 3. Строим слоты
	slots, err := BuildSlots(entry, date, g.duration)
	if err != nil {
		return 0, fmt.Errorf("%w: build slots: %v", ErrInternal, err)
	}
	if len(slots) == 0 {
		return 0, nil
	}

	// 4. Сохраняем, пропуская уже существующие (date, start_time)
	inserted, err := g.slotRepo.CreateMissing(ctx, slots)
	if err != nil {
		g.logger.Error("EnsureSlots: failed to create slots for date=%s: %v", date.Format(domain.DateFormat), err)
		return 0, fmt.Errorf("%w: create slots: %v", ErrInternal, err)
	}

	g.logger.Info("EnsureSlots: date=%s, weekday=%s, generated=%d %v",
		date.Format(domain.DateFormat), weekday, inserted, startTimes(slots))

	if int(inserted) == len(slots) {
		return len(slots), nil
	}

	// Часть слотов вставил параллельный запрос
	count, err := g.slotRepo.CountByDate(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("%w: count slots: %v", ErrInternal, err)
	}
	return count, nil
}

// GenerateForRange вызывает EnsureForDate для каждой даты периода включительно
func (g *Generator) GenerateForRange(ctx context.Context, start, end time.Time) ([]domain.SlotGeneration, error) {
	start, end = domain.DateOnly(start), domain.DateOnly(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start.Format(domain.DateFormat), end.Format(domain.DateFormat))
	}

	dates := domain.DatesBetween(start, end)
	if len(dates) > domain.MaxGenerateRangeDays {
		return nil, fmt.Errorf("%w: %d days, max %d", ErrRangeTooLong, len(dates), domain.MaxGenerateRangeDays)
	}

	result := make([]domain.SlotGeneration, 0, len(dates))
	for _, date := range dates {
		count, err := g.EnsureForDate(ctx, date)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.SlotGeneration{Date: date, SlotsCount: count})
	}

	g.logger.Info("GenerateSlots: %s..%s, days=%d",
		start.Format(domain.DateFormat), end.Format(domain.DateFormat), len(dates))
	return result, nil
}

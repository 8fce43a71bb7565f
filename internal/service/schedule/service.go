package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/schedule"
)

// Service сервис недельного шаблона расписания.
// Изменения шаблона не затрагивают уже сгенерированные слоты.
type Service struct {
	repo   Repository
	logger Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo Repository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetAll возвращает 7 записей шаблона в порядке Пн..Вс
func (s *Service) GetAll(ctx context.Context) ([]domain.WeeklyScheduleEntry, error) {
	entries, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetWeeklySchedule: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %v", ErrInternal, err)
	}
	return entries, nil
}

// GetByWeekday возвращает запись шаблона для дня недели
func (s *Service) GetByWeekday(ctx context.Context, day domain.Weekday) (*domain.WeeklyScheduleEntry, error) {
	if !day.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWeekday, day)
	}

	entry, err := s.repo.GetByWeekday(ctx, day)
	if err != nil {
		return nil, s.mapRepoError("GetByWeekday", day, err)
	}
	return entry, nil
}

// Update частично обновляет запись шаблона
func (s *Service) Update(ctx context.Context, day domain.Weekday, update domain.WeeklyScheduleUpdate) (*domain.WeeklyScheduleEntry, error) {
	s.logger.Info("UpdateWeeklySchedule: weekday=%s", day)

	// 1. Валидация входных данных
	if !day.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWeekday, day)
	}
	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if update.StartTime != nil {
		if err := update.StartTime.Validate(); err != nil {
			return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
		}
	}
	if update.EndTime != nil {
		if err := update.EndTime.Validate(); err != nil {
			return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
		}
	}

	// 2. Проверяем итоговое окно после применения изменений
	current, err := s.repo.GetByWeekday(ctx, day)
	if err != nil {
		return nil, s.mapRepoError("UpdateWeeklySchedule", day, err)
	}

	next := update.Apply(*current)
	if !next.StartTime.IsBefore(next.EndTime) {
		s.logger.Warn("UpdateWeeklySchedule: weekday=%s invalid window %s-%s", day, next.StartTime, next.EndTime)
		return nil, fmt.Errorf("%w: %s-%s", ErrInvalidTimeRange, next.StartTime, next.EndTime)
	}

	// 3. Сохраняем
	updated, err := s.repo.Update(ctx, day, update)
	if err != nil {
		return nil, s.mapRepoError("UpdateWeeklySchedule", day, err)
	}

	s.logger.Info("UpdateWeeklySchedule: weekday=%s now %s-%s, active=%t",
		day, updated.StartTime, updated.EndTime, updated.IsActive)
	return updated, nil
}

// ToggleActive переключает рабочий/выходной день
func (s *Service) ToggleActive(ctx context.Context, day domain.Weekday) (*domain.WeeklyScheduleEntry, error) {
	if !day.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWeekday, day)
	}

	updated, err := s.repo.ToggleActive(ctx, day)
	if err != nil {
		return nil, s.mapRepoError("ToggleWeeklySchedule", day, err)
	}

	s.logger.Info("ToggleWeeklySchedule: weekday=%s, active=%t", day, updated.IsActive)
	return updated, nil
}

func (s *Service) mapRepoError(op string, day domain.Weekday, err error) error {
	if errors.Is(err, scheduleRepo.ErrEntryNotFound) {
		s.logger.Warn("%s: weekday=%s not found", op, day)
		return ErrEntryNotFound
	}
	s.logger.Error("%s: repository error for weekday=%s: %v", op, day, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

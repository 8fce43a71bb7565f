package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	slotRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/slot"
)

// Service административные операции со слотами
type Service struct {
	slotRepo  SlotRepository
	generator Generator
	logger    Logger
}

// NewService создает новый экземпляр сервиса
func NewService(slotRepo SlotRepository, generator Generator, logger Logger) *Service {
	return &Service{
		slotRepo:  slotRepo,
		generator: generator,
		logger:    logger,
	}
}

// GetByDate возвращает все слоты на дату с кодами бронирований, при необходимости генерируя их
func (s *Service) GetByDate(ctx context.Context, date time.Time) ([]domain.Slot, error) {
	date = domain.DateOnly(date)

	if _, err := s.generator.EnsureForDate(ctx, date); err != nil {
		return nil, err
	}

	slots, err := s.slotRepo.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("GetSlotsByDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetByDate - repository error: %v", ErrInternal, err)
	}
	return slots, nil
}

// GenerateForRange генерирует слоты на период
func (s *Service) GenerateForRange(ctx context.Context, start, end time.Time) ([]domain.SlotGeneration, error) {
	s.logger.Info("GenerateSlots: start=%s, end=%s", start.Format(domain.DateFormat), end.Format(domain.DateFormat))
	return s.generator.GenerateForRange(ctx, start, end)
}

// Block блокирует свободный слот
func (s *Service) Block(ctx context.Context, id int64, note *string) (*domain.Slot, error) {
	s.logger.Info("BlockSlot: id=%d", id)

	if err := validateNote(note); err != nil {
		return nil, err
	}

	if err := s.slotRepo.Block(ctx, id, note); err != nil {
		return nil, s.mapRepoError("BlockSlot", id, err)
	}
	return s.get(ctx, "BlockSlot", id)
}

// Unblock возвращает заблокированный администратором слот в available
func (s *Service) Unblock(ctx context.Context, id int64) (*domain.Slot, error) {
	s.logger.Info("UnblockSlot: id=%d", id)

	if err := s.slotRepo.Unblock(ctx, id); err != nil {
		return nil, s.mapRepoError("UnblockSlot", id, err)
	}
	return s.get(ctx, "UnblockSlot", id)
}

// SetHoliday переводит все свободные слоты даты в holiday. Занятые слоты не меняются
func (s *Service) SetHoliday(ctx context.Context, date time.Time, note *string) (int64, error) {
	date = domain.DateOnly(date)
	s.logger.Info("SetHoliday: date=%s", date.Format(domain.DateFormat))

	if err := validateNote(note); err != nil {
		return 0, err
	}

	// Слоты должны существовать, иначе выходной не на что ставить
	if _, err := s.generator.EnsureForDate(ctx, date); err != nil {
		return 0, err
	}

	count, err := s.slotRepo.SetHoliday(ctx, date, note)
	if err != nil {
		s.logger.Error("SetHoliday: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return 0, fmt.Errorf("%w: SetHoliday - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetHoliday: date=%s, slots=%d", date.Format(domain.DateFormat), count)
	return count, nil
}

// CancelHoliday возвращает holiday слоты даты в available
func (s *Service) CancelHoliday(ctx context.Context, date time.Time) (int64, error) {
	date = domain.DateOnly(date)

	count, err := s.slotRepo.CancelHoliday(ctx, date)
	if err != nil {
		s.logger.Error("CancelHoliday: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return 0, fmt.Errorf("%w: CancelHoliday - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CancelHoliday: date=%s, slots=%d", date.Format(domain.DateFormat), count)
	return count, nil
}

// DeleteAvailable удаляет свободные слоты даты, например после изменения шаблона
func (s *Service) DeleteAvailable(ctx context.Context, date time.Time) (int64, error) {
	date = domain.DateOnly(date)

	count, err := s.slotRepo.DeleteAvailableByDate(ctx, date)
	if err != nil {
		s.logger.Error("DeleteAvailableSlots: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return 0, fmt.Errorf("%w: DeleteAvailable - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteAvailableSlots: date=%s, deleted=%d", date.Format(domain.DateFormat), count)
	return count, nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Slot, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(op, id, err)
	}
	return slot, nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, slotRepo.ErrSlotNotFound):
		s.logger.Warn("%s: slot id=%d not found", op, id)
		return ErrSlotNotFound
	case errors.Is(err, slotRepo.ErrSlotNotAvailable):
		s.logger.Warn("%s: slot id=%d is not available", op, id)
		return ErrSlotNotAvailable
	case errors.Is(err, slotRepo.ErrSlotNotBlocked):
		s.logger.Warn("%s: slot id=%d is not blocked", op, id)
		return ErrSlotNotBlocked
	default:
		s.logger.Error("%s: repository error for slot id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func validateNote(note *string) error {
	if note != nil && len(*note) > domain.MaxNotesLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

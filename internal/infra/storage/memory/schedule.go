package memory

import (
	"context"
	"time"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/schedule"
)

// ScheduleRepository недельный шаблон в памяти
type ScheduleRepository struct {
	store *Store
}

func (r *ScheduleRepository) GetAll(ctx context.Context) ([]domain.WeeklyScheduleEntry, error) {
	defer r.store.lock(ctx)()

	entries := make([]domain.WeeklyScheduleEntry, 0, len(domain.Weekdays))
	for _, day := range domain.Weekdays {
		if entry, ok := r.store.data.schedule[day]; ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (r *ScheduleRepository) GetByWeekday(ctx context.Context, day domain.Weekday) (*domain.WeeklyScheduleEntry, error) {
	defer r.store.lock(ctx)()

	entry, ok := r.store.data.schedule[day]
	if !ok {
		return nil, scheduleRepo.ErrEntryNotFound
	}
	return &entry, nil
}

func (r *ScheduleRepository) Update(ctx context.Context, day domain.Weekday, update domain.WeeklyScheduleUpdate) (*domain.WeeklyScheduleEntry, error) {
	defer r.store.lock(ctx)()

	entry, ok := r.store.data.schedule[day]
	if !ok {
		return nil, scheduleRepo.ErrEntryNotFound
	}
	entry = update.Apply(entry)
	entry.UpdatedAt = time.Now()
	r.store.data.schedule[day] = entry
	return &entry, nil
}

func (r *ScheduleRepository) ToggleActive(ctx context.Context, day domain.Weekday) (*domain.WeeklyScheduleEntry, error) {
	defer r.store.lock(ctx)()

	entry, ok := r.store.data.schedule[day]
	if !ok {
		return nil, scheduleRepo.ErrEntryNotFound
	}
	entry.IsActive = !entry.IsActive
	entry.UpdatedAt = time.Now()
	r.store.data.schedule[day] = entry
	return &entry, nil
}

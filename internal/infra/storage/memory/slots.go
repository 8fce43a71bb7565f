package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	slotRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/slot"
	"github.com/m04kA/HomeCare-BookingService/pkg/types"
)

// SlotRepository слоты в памяти
type SlotRepository struct {
	store *Store
}

func (r *SlotRepository) CountByDate(ctx context.Context, date time.Time) (int, error) {
	defer r.store.lock(ctx)()
	return len(r.byDate(date, nil)), nil
}

func (r *SlotRepository) CreateMissing(ctx context.Context, slots []domain.Slot) (int64, error) {
	defer r.store.lock(ctx)()

	data := r.store.data
	var created int64
	for _, s := range slots {
		s.Date = domain.DateOnly(s.Date)
		key := keyOf(s)
		if _, exists := data.slotIndex[key]; exists {
			continue
		}
		data.nextSlotID++
		now := time.Now()
		s.ID = data.nextSlotID
		s.Status = domain.SlotAvailable
		s.BookingID = nil
		s.BookingCode = nil
		s.CreatedAt = now
		s.UpdatedAt = now
		data.slots[s.ID] = s
		data.slotIndex[key] = s.ID
		created++
	}
	return created, nil
}

func (r *SlotRepository) ListByDate(ctx context.Context, date time.Time) ([]domain.Slot, error) {
	defer r.store.lock(ctx)()
	return r.withCodes(r.byDate(date, nil)), nil
}

func (r *SlotRepository) ListAvailableByDate(ctx context.Context, date time.Time) ([]domain.Slot, error) {
	defer r.store.lock(ctx)()
	status := domain.SlotAvailable
	return r.byDate(date, &status), nil
}

func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	defer r.store.lock(ctx)()

	s, ok := r.store.data.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	out := r.withCodes([]domain.Slot{s})
	return &out[0], nil
}

func (r *SlotRepository) GetByDateTime(ctx context.Context, date time.Time, start types.TimeString) (*domain.Slot, error) {
	defer r.store.lock(ctx)()

	id, ok := r.store.data.slotIndex[slotKey{date: date.Format(domain.DateFormat), start: start}]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	out := r.withCodes([]domain.Slot{r.store.data.slots[id]})
	return &out[0], nil
}

func (r *SlotRepository) Claim(ctx context.Context, date time.Time, start types.TimeString, bookingID int64) error {
	defer r.store.lock(ctx)()

	data := r.store.data
	id, ok := data.slotIndex[slotKey{date: date.Format(domain.DateFormat), start: start}]
	if !ok {
		return slotRepo.ErrSlotNotAvailable
	}
	s := data.slots[id]
	if s.Status != domain.SlotAvailable {
		return slotRepo.ErrSlotNotAvailable
	}
	s.Status = domain.SlotBooked
	s.BookingID = &bookingID
	s.UpdatedAt = time.Now()
	data.slots[id] = s
	return nil
}

func (r *SlotRepository) ReleaseByBooking(ctx context.Context, bookingID int64) (int64, error) {
	defer r.store.lock(ctx)()

	var released int64
	for id, s := range r.store.data.slots {
		if s.BookingID == nil || *s.BookingID != bookingID {
			continue
		}
		s.Status = domain.SlotAvailable
		s.BookingID = nil
		s.UpdatedAt = time.Now()
		r.store.data.slots[id] = s
		released++
	}
	return released, nil
}

func (r *SlotRepository) Block(ctx context.Context, id int64, note *string) error {
	return r.transition(ctx, id, domain.SlotAvailable, domain.SlotBlockedByAdmin, note, slotRepo.ErrSlotNotAvailable)
}

func (r *SlotRepository) Unblock(ctx context.Context, id int64) error {
	return r.transition(ctx, id, domain.SlotBlockedByAdmin, domain.SlotAvailable, nil, slotRepo.ErrSlotNotBlocked)
}

func (r *SlotRepository) SetHoliday(ctx context.Context, date time.Time, note *string) (int64, error) {
	return r.bulkStatus(ctx, date, domain.SlotAvailable, domain.SlotHoliday, note)
}

func (r *SlotRepository) CancelHoliday(ctx context.Context, date time.Time) (int64, error) {
	return r.bulkStatus(ctx, date, domain.SlotHoliday, domain.SlotAvailable, nil)
}

func (r *SlotRepository) DeleteAvailableByDate(ctx context.Context, date time.Time) (int64, error) {
	defer r.store.lock(ctx)()

	status := domain.SlotAvailable
	var deleted int64
	for _, s := range r.byDate(date, &status) {
		delete(r.store.data.slots, s.ID)
		delete(r.store.data.slotIndex, keyOf(s))
		deleted++
	}
	return deleted, nil
}

func (r *SlotRepository) transition(
	ctx context.Context,
	id int64,
	from, to domain.SlotStatus,
	note *string,
	preconditionErr error,
) error {
	defer r.store.lock(ctx)()

	s, ok := r.store.data.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	if s.Status != from {
		return preconditionErr
	}
	s.Status = to
	s.Note = note
	s.UpdatedAt = time.Now()
	r.store.data.slots[id] = s
	return nil
}

func (r *SlotRepository) bulkStatus(ctx context.Context, date time.Time, from, to domain.SlotStatus, note *string) (int64, error) {
	defer r.store.lock(ctx)()

	var changed int64
	for _, s := range r.byDate(date, &from) {
		s.Status = to
		s.Note = note
		s.UpdatedAt = time.Now()
		r.store.data.slots[s.ID] = s
		changed++
	}
	return changed, nil
}

// byDate вызывается под мьютексом
func (r *SlotRepository) byDate(date time.Time, status *domain.SlotStatus) []domain.Slot {
	day := date.Format(domain.DateFormat)
	var out []domain.Slot
	for _, s := range r.store.data.slots {
		if s.Date.Format(domain.DateFormat) != day {
			continue
		}
		if status != nil && s.Status != *status {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.IsBefore(out[j].StartTime) })
	return out
}

// withCodes вызывается под мьютексом
func (r *SlotRepository) withCodes(slots []domain.Slot) []domain.Slot {
	for i := range slots {
		slots[i].BookingCode = nil
		if slots[i].BookingID == nil {
			continue
		}
		if b, ok := r.store.data.bookings[*slots[i].BookingID]; ok {
			code := b.BookingCode
			slots[i].BookingCode = &code
		}
	}
	return slots
}

package memory

import (
	"context"
	"sync"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/pkg/types"
)

// Store хранит все данные сервиса в памяти процесса.
// Используется при database.driver = "memory" и в тестах.
//
// Все операции сериализуются одним мьютексом. Транзакция держит мьютекс на всё время
// выполнения и при ошибке восстанавливает снимок данных, сделанный в начале.
type Store struct {
	mu         sync.Mutex
	data       *state
	codePrefix string
}

type txKey struct{}

type slotKey struct {
	date  string
	start types.TimeString
}

type state struct {
	schedule map[domain.Weekday]domain.WeeklyScheduleEntry

	slots      map[int64]domain.Slot
	slotIndex  map[slotKey]int64
	nextSlotID int64

	bookings      map[int64]domain.Booking
	nextBookingID int64

	payments      map[int64]domain.Payment // ключ - booking_id
	nextPaymentID int64

	notifications      map[int64]domain.Notification
	nextNotificationID int64
}

// NewStore создает пустое хранилище с шаблоном расписания по умолчанию
func NewStore(codePrefix string) *Store {
	s := &Store{
		data:       newState(),
		codePrefix: codePrefix,
	}
	for _, day := range domain.Weekdays {
		s.data.schedule[day] = defaultScheduleEntry(day)
	}
	return s
}

// Schedule возвращает репозиторий недельного шаблона
func (s *Store) Schedule() *ScheduleRepository {
	return &ScheduleRepository{store: s}
}

// Slots возвращает репозиторий слотов
func (s *Store) Slots() *SlotRepository {
	return &SlotRepository{store: s}
}

// Bookings возвращает репозиторий бронирований
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

// Payments возвращает репозиторий оплат
func (s *Store) Payments() *PaymentRepository {
	return &PaymentRepository{store: s}
}

// Notifications возвращает репозиторий уведомлений
func (s *Store) Notifications() *NotificationRepository {
	return &NotificationRepository{store: s}
}

// Do выполняет fn атомарно
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.inTx(ctx, fn)
}

// DoSerializable выполняет fn атомарно. В памяти все транзакции и так последовательны
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.inTx(ctx, fn)
}

// DoReadOnly выполняет fn атомарно
func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.inTx(ctx, fn)
}

func (s *Store) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTransaction(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func (s *Store) inTransaction(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

// lock захватывает мьютекс, если вызов не внутри транзакции этого хранилища
func (s *Store) lock(ctx context.Context) func() {
	if s.inTransaction(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func newState() *state {
	return &state{
		schedule:      make(map[domain.Weekday]domain.WeeklyScheduleEntry),
		slots:         make(map[int64]domain.Slot),
		slotIndex:     make(map[slotKey]int64),
		bookings:      make(map[int64]domain.Booking),
		payments:      make(map[int64]domain.Payment),
		notifications: make(map[int64]domain.Notification),
	}
}

func (st *state) clone() *state {
	c := newState()
	for k, v := range st.schedule {
		c.schedule[k] = v
	}
	for k, v := range st.slots {
		c.slots[k] = v
	}
	for k, v := range st.slotIndex {
		c.slotIndex[k] = v
	}
	for k, v := range st.bookings {
		c.bookings[k] = v
	}
	for k, v := range st.payments {
		c.payments[k] = v
	}
	for k, v := range st.notifications {
		c.notifications[k] = v
	}
	c.nextSlotID = st.nextSlotID
	c.nextBookingID = st.nextBookingID
	c.nextPaymentID = st.nextPaymentID
	c.nextNotificationID = st.nextNotificationID
	return c
}

// Часы работы по умолчанию: Пт и Сб с утра, остальные дни вечером
func defaultScheduleEntry(day domain.Weekday) domain.WeeklyScheduleEntry {
	entry := domain.WeeklyScheduleEntry{
		Weekday:   day,
		StartTime: "18:00",
		EndTime:   "22:00",
		IsActive:  true,
	}
	if day == domain.Friday || day == domain.Saturday {
		entry.StartTime = "08:00"
	}
	return entry
}

func keyOf(s domain.Slot) slotKey {
	return slotKey{date: s.Date.Format(domain.DateFormat), start: s.StartTime}
}

package create_booking

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/HomeCare-BookingService/internal/integrations/catalog"
	"github.com/m04kA/HomeCare-BookingService/internal/service/slotgen"
	"github.com/m04kA/HomeCare-BookingService/pkg/logger"
	"github.com/m04kA/HomeCare-BookingService/pkg/ptr"
	"github.com/m04kA/HomeCare-BookingService/pkg/types"
)

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, item *domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, *item)
	return nil
}

type sentEmail struct {
	code string
	kind domain.EmailKind
}

type recordingEmailSink struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (s *recordingEmailSink) SendBookingEmail(_ context.Context, b *domain.Booking, kind domain.EmailKind, _ map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentEmail{code: b.BookingCode, kind: kind})
	return nil
}

var (
	rules = domain.DefaultBookingRules()
	// 2026-03-01 10:00 по времени клиники (воскресенье)
	baseNow = time.Date(2026, 3, 1, 10, 0, 0, 0, rules.Location)
	monday  = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	friday  = time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	uc       *UseCase
	store    *memory.Store
	clock    *fixedClock
	notifier *recordingNotifier
	emails   *recordingEmailSink
}

func newFixture() *fixture {
	store := memory.NewStore(rules.BookingCodePrefix)
	log := logger.NewWithWriter(io.Discard, logger.LevelError)
	clock := &fixedClock{now: baseNow}
	notifier := &recordingNotifier{}
	emails := &recordingEmailSink{}

	services := catalog.NewStatic([]domain.Service{
		{ID: 1, Name: "Fisioterapi", Price: decimal.NewFromInt(250000), DurationMinutes: 60, IsActive: true},
		{ID: 2, Name: "Akupunktur", Price: decimal.NewFromInt(300000), DurationMinutes: 60, IsActive: false},
	})
	gen := slotgen.NewGenerator(store.Schedule(), store.Slots(), rules.SlotDurationMinutes, log)

	uc := NewUseCase(store.Bookings(), store.Slots(), store.Payments(), gen, services, notifier, emails, store, rules, clock, log)
	return &fixture{uc: uc, store: store, clock: clock, notifier: notifier, emails: emails}
}

func request(patientID int64, date time.Time, start types.TimeString) *Request {
	return &Request{
		PatientID: patientID,
		ServiceID: 1,
		Date:      date,
		StartTime: start,
		Address:   "Jl. Sudirman 1, Jakarta",
		Complaint: "lower back pain",
	}
}

func TestUseCase_HappyPath(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	resp, err := f.uc.Execute(ctx, request(42, monday, "18:00"))
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, domain.StatusPendingConfirmation, b.Status)
	assert.Equal(t, "CVA-20260302-001", b.BookingCode)
	assert.Equal(t, domain.PaymentCashOnVisit, b.PaymentMethod)
	assert.Equal(t, "Fisioterapi", b.ServiceName)
	assert.True(t, b.ServicePrice.Equal(decimal.NewFromInt(250000)))

	slot, err := f.store.Slots().GetByDateTime(ctx, monday, "18:00")
	require.NoError(t, err)
	assert.Equal(t, domain.SlotBooked, slot.Status)
	require.NotNil(t, slot.BookingID)
	assert.Equal(t, b.ID, *slot.BookingID)

	require.NotNil(t, resp.Payment)
	assert.Equal(t, domain.PaymentAwaiting, resp.Payment.Status)
	assert.True(t, resp.Payment.Amount.Equal(decimal.NewFromInt(250000)))

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, int64(42), f.notifier.sent[0].UserID)
	require.Len(t, f.emails.sent, 1)
	assert.Equal(t, domain.EmailNewBookingAdminAlert, f.emails.sent[0].kind)
}

func TestUseCase_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"missing patient", func(r *Request) { r.PatientID = 0 }, ErrInvalidInput},
		{"bad time", func(r *Request) { r.StartTime = "18:5" }, ErrInvalidInput},
		{"empty address", func(r *Request) { r.Address = "  " }, ErrInvalidInput},
		{"empty complaint", func(r *Request) { r.Complaint = "" }, ErrInvalidInput},
		{"unknown payment method", func(r *Request) { r.PaymentMethod = "card" }, ErrInvalidInput},
		{"unknown service", func(r *Request) { r.ServiceID = 99 }, ErrServiceNotFound},
		{"inactive service", func(r *Request) { r.ServiceID = 2 }, ErrServiceInactive},
		{"past date", func(r *Request) { r.Date = baseNow.AddDate(0, 0, -1) }, ErrTooSoon},
		{"too far ahead", func(r *Request) { r.Date = monday.AddDate(0, 0, 14) }, ErrTooFarAhead},
		{"no slot at time", func(r *Request) { r.StartTime = "09:00" }, ErrSlotNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := request(42, monday, "18:00")
			tt.mutate(req)

			_, err := f.uc.Execute(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUseCase_LeadTimeBoundary(t *testing.T) {
	ctx := context.Background()
	instant := time.Date(2026, 3, 2, 18, 0, 0, 0, rules.Location)
	threshold := time.Duration(rules.MinHoursBeforeBooking) * time.Hour

	t.Run("one second short", func(t *testing.T) {
		f := newFixture()
		f.clock.now = instant.Add(-threshold).Add(time.Second)

		_, err := f.uc.Execute(ctx, request(42, monday, "18:00"))
		assert.ErrorIs(t, err, ErrTooSoon)
		assert.Equal(t, domain.KindValidationFailed, domain.KindOf(err))
	})

	t.Run("one second over", func(t *testing.T) {
		f := newFixture()
		f.clock.now = instant.Add(-threshold).Add(-time.Second)

		_, err := f.uc.Execute(ctx, request(42, monday, "18:00"))
		require.NoError(t, err)
	})
}

func TestUseCase_QuotaBoundary(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	var first *domain.Booking
	for i, start := range []types.TimeString{"08:00", "09:00", "10:00", "11:00"} {
		resp, err := f.uc.Execute(ctx, request(int64(100+i), friday, start))
		require.NoError(t, err)
		if first == nil {
			first = resp.Booking
		}
	}

	_, err := f.uc.Execute(ctx, request(200, friday, "12:00"))
	assert.ErrorIs(t, err, ErrDateFull)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	// Отмена освобождает место в дневном лимите
	update := domain.NewBookingStatusUpdate(domain.StatusCancelledByPatient, baseNow)
	require.NoError(t, f.store.Bookings().UpdateStatus(ctx, first.ID, first.Status, update))
	_, err = f.store.Slots().ReleaseByBooking(ctx, first.ID)
	require.NoError(t, err)

	resp, err := f.uc.Execute(ctx, request(200, friday, "12:00"))
	require.NoError(t, err)
	assert.Equal(t, "CVA-20260306-005", resp.Booking.BookingCode)
}

func TestUseCase_NoDoubleBooking(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	const attempts = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(patient int64) {
			defer wg.Done()
			_, err := f.uc.Execute(ctx, request(patient, friday, "14:00"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotNotAvailable):
				conflicts++
			}
		}(int64(i + 1))
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)

	active, err := f.store.Bookings().CountActiveByDate(ctx, friday)
	require.NoError(t, err)
	assert.Equal(t, 1, active)
}

func TestUseCase_SlotAlreadyBlocked(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.uc.generator.EnsureForDate(ctx, monday)
	require.NoError(t, err)
	slot, err := f.store.Slots().GetByDateTime(ctx, monday, "19:00")
	require.NoError(t, err)
	require.NoError(t, f.store.Slots().Block(ctx, slot.ID, ptr.Ptr("therapist unavailable")))

	_, err = f.uc.Execute(ctx, request(42, monday, "19:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	bookings, err := f.store.Bookings().List(ctx, domain.BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestUseCase_SideEffectFailuresDoNotFail(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.notifier.err = errors.New("inbox down")
	f.emails.err = errors.New("broker down")

	resp, err := f.uc.Execute(ctx, request(42, monday, "20:00"))
	require.NoError(t, err)

	stored, err := f.store.Bookings().GetByID(ctx, resp.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingConfirmation, stored.Status)
}

func TestUseCase_TransferPaymentMethod(t *testing.T) {
	f := newFixture()
	req := request(42, monday, "21:00")
	req.PaymentMethod = domain.PaymentTransferOnVisit

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentTransferOnVisit, resp.Booking.PaymentMethod)
	assert.Equal(t, domain.PaymentTransferOnVisit, resp.Payment.Method)
}

package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition_Table(t *testing.T) {
	allowed := map[BookingStatus][]BookingStatus{
		StatusPendingConfirmation: {StatusConfirmed, StatusRejected, StatusCancelledByPatient, StatusCancelledBySystem},
		StatusConfirmed:           {StatusScheduled, StatusEnRoute, StatusInProgress, StatusCompleted, StatusCancelledByPatient, StatusCancelledBySystem},
		StatusScheduled:           {StatusEnRoute, StatusInProgress, StatusCompleted, StatusCancelledByPatient, StatusCancelledBySystem},
		StatusEnRoute:             {StatusInProgress, StatusCompleted, StatusCancelledBySystem},
		StatusInProgress:          {StatusCompleted},
	}

	for _, from := range AllBookingStatuses {
		for _, to := range AllBookingStatuses {
			legal := containsStatus(allowed[from], to)
			err := ValidateTransition(from, to)
			if legal {
				assert.NoError(t, err, "%s -> %s", from, to)
				continue
			}
			require.Error(t, err, "%s -> %s", from, to)
			assert.True(t, errors.Is(err, ErrInvalidTransition))
			assert.Equal(t, KindInvalidTransition, KindOf(err))
			assert.Contains(t, err.Error(), string(from))
			assert.Contains(t, err.Error(), string(to))
		}
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	for _, s := range []BookingStatus{StatusCompleted, StatusRejected, StatusCancelledByPatient, StatusCancelledBySystem} {
		assert.True(t, s.IsTerminal(), s)
	}
	assert.False(t, StatusInProgress.IsTerminal())
}

func TestBookingStatus_ReleasesSlot(t *testing.T) {
	for _, s := range AllBookingStatuses {
		want := s == StatusRejected || s == StatusCancelledByPatient || s == StatusCancelledBySystem
		assert.Equal(t, want, s.ReleasesSlot(), s)
	}
}

func TestNewBookingStatusUpdate_Timestamps(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	confirmed := NewBookingStatusUpdate(StatusConfirmed, at)
	require.NotNil(t, confirmed.ConfirmedAt)
	assert.Nil(t, confirmed.CompletedAt)

	completed := NewBookingStatusUpdate(StatusCompleted, at)
	require.NotNil(t, completed.CompletedAt)

	rejected := NewBookingStatusUpdate(StatusRejected, at)
	require.NotNil(t, rejected.CancelledAt)

	enRoute := NewBookingStatusUpdate(StatusEnRoute, at)
	assert.Nil(t, enRoute.ConfirmedAt)
	assert.Nil(t, enRoute.CompletedAt)
	assert.Nil(t, enRoute.CancelledAt)
}

func TestBookingCode(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	code := FormatBookingCode("CVA", date, 7)
	assert.Equal(t, "CVA-20260302-007", code)

	seq, ok := ParseBookingCodeSequence(code, BookingCodePrefix("CVA", date))
	require.True(t, ok)
	assert.Equal(t, 7, seq)

	_, ok = ParseBookingCodeSequence("CVA-20260303-001", BookingCodePrefix("CVA", date))
	assert.False(t, ok)
}

func TestKindOf_FallsBackToInternal(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, KindConflict, KindOf(NewError(KindConflict, "x")))
}

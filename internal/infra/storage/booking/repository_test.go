package booking

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/internal/infra/storage/sqltest"
)

var visitDate = time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

func TestRepository_CountActiveByDate_ExcludesInactive(t *testing.T) {
	rec, db := sqltest.Open(t)
	repo := NewRepository(db, "CVA")
	rec.Columns = []string{"count"}
	rec.Rows = [][]driver.Value{{int64(3)}}

	count, err := repo.CountActiveByDate(context.Background(), visitDate)

	require.NoError(t, err)
	assert.Equal(t, 3, count)

	q := rec.Last(t)
	assert.Equal(t,
		"SELECT COUNT(*) FROM bookings WHERE booking_date = $1 AND status NOT IN ($2,$3,$4)",
		q.SQL)
	assert.Equal(t, []driver.Value{"2026-03-06", "rejected", "cancelled_by_patient", "cancelled_by_system"}, q.Args)
}

func TestRepository_UpdateStatus_ComparesCurrentStatus(t *testing.T) {
	rec, db := sqltest.Open(t)
	repo := NewRepository(db, "CVA")
	rec.RowsAffected = 1
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	err := repo.UpdateStatus(context.Background(), 5, domain.StatusPendingConfirmation,
		domain.NewBookingStatusUpdate(domain.StatusConfirmed, at))
	require.NoError(t, err)

	q := rec.Last(t)
	assert.Equal(t,
		"UPDATE bookings SET status = $1, updated_at = NOW(), confirmed_at = $2 WHERE id = $3 AND status = $4",
		q.SQL)
	assert.Equal(t, []driver.Value{"confirmed", at, int64(5), "pending_confirmation"}, q.Args)
}

func TestRepository_UpdateStatus_NoRows(t *testing.T) {
	rec, db := sqltest.Open(t)
	repo := NewRepository(db, "CVA")
	rec.RowsAffected = 0

	// Повторное чтение ничего не находит - бронирования нет
	err := repo.UpdateStatus(context.Background(), 5, domain.StatusPendingConfirmation,
		domain.NewBookingStatusUpdate(domain.StatusConfirmed, time.Now()))

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Len(t, rec.Queries(), 2)
}

func TestRepository_NextCode(t *testing.T) {
	tests := []struct {
		name string
		last []driver.Value
		want string
	}{
		{"first of the day", nil, "CVA-20260306-001"},
		{"after 041", []driver.Value{"CVA-20260306-041"}, "CVA-20260306-042"},
		{"after 999", []driver.Value{"CVA-20260306-999"}, "CVA-20260306-1000"},
		{"after 1000", []driver.Value{"CVA-20260306-1000"}, "CVA-20260306-1001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, db := sqltest.Open(t)
			repo := NewRepository(db, "CVA")
			rec.Columns = []string{"booking_code"}
			if tt.last != nil {
				rec.Rows = [][]driver.Value{tt.last}
			}

			code, err := repo.nextCode(context.Background(), visitDate)

			require.NoError(t, err)
			assert.Equal(t, tt.want, code)
			assert.Equal(t,
				"SELECT booking_code FROM bookings WHERE booking_code LIKE $1 "+
					"ORDER BY length(booking_code) DESC, booking_code DESC LIMIT 1",
				rec.Last(t).SQL)
		})
	}
}

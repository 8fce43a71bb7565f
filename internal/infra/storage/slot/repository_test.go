package slot

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HomeCare-BookingService/internal/infra/storage/sqltest"
)

var visitDate = time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

func TestRepository_Claim_OnlyFromAvailable(t *testing.T) {
	rec, db := sqltest.Open(t)
	repo := NewRepository(db)
	rec.RowsAffected = 1

	require.NoError(t, repo.Claim(context.Background(), visitDate, "09:00", 7))

	q := rec.Last(t)
	assert.Equal(t,
		"UPDATE slots SET status = $1, booking_id = $2, updated_at = NOW() "+
			"WHERE slot_date = $3 AND start_time = $4 AND status = $5",
		q.SQL)
	assert.Equal(t, []driver.Value{"booked", int64(7), "2026-03-06", "09:00", "available"}, q.Args)
}

func TestRepository_Claim_NoRowsMeansTaken(t *testing.T) {
	rec, db := sqltest.Open(t)
	repo := NewRepository(db)
	rec.RowsAffected = 0

	err := repo.Claim(context.Background(), visitDate, "09:00", 7)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestRepository_ReleaseByBooking(t *testing.T) {
	rec, db := sqltest.Open(t)
	repo := NewRepository(db)
	rec.RowsAffected = 1

	released, err := repo.ReleaseByBooking(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(1), released)

	q := rec.Last(t)
	assert.Equal(t,
		"UPDATE slots SET status = $1, booking_id = $2, updated_at = NOW() WHERE booking_id = $3",
		q.SQL)
	assert.Equal(t, []driver.Value{"available", nil, int64(7)}, q.Args)
}

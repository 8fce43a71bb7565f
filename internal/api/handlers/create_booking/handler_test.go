package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HomeCare-BookingService/internal/api/middleware"
	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/HomeCare-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/HomeCare-BookingService/pkg/logger"
)

type fakeUseCase struct {
	got *createBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &createBooking.Response{
		Booking: &domain.Booking{
			ID:            1,
			BookingCode:   "CVA-20260306-001",
			PatientID:     req.PatientID,
			ServiceID:     req.ServiceID,
			BookingDate:   req.Date,
			StartTime:     req.StartTime,
			Status:        domain.StatusPendingConfirmation,
			PaymentMethod: domain.PaymentCashOnVisit,
			ServicePrice:  decimal.NewFromInt(250000),
		},
		Payment: &domain.Payment{ID: 1, BookingID: 1, Status: domain.PaymentAwaiting, Amount: decimal.NewFromInt(250000)},
	}, nil
}

const validBody = `{"serviceId":3,"bookingDate":"2026-03-06","startTime":"09:00","address":"Jl. Sudirman 1","complaint":"Боль в спине"}`

func serve(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, logger.NewWithWriter(io.Discard, logger.LevelError))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 42, Role: domain.RolePatient}))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Created(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(t, uc, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(42), uc.got.PatientID)
	assert.Equal(t, time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), uc.got.Date)

	var resp models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "CVA-20260306-001", resp.BookingCode)
	assert.Equal(t, "09:00", resp.StartTime)
	require.NotNil(t, resp.Payment)
	assert.Equal(t, "awaiting", resp.Payment.Status)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"too soon", createBooking.ErrTooSoon, http.StatusBadRequest},
		{"service not found", createBooking.ErrServiceNotFound, http.StatusBadRequest},
		{"date full", createBooking.ErrDateFull, http.StatusConflict},
		{"slot taken", createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{"concurrent", createBooking.ErrConcurrentBooking, http.StatusConflict},
		{"internal", fmt.Errorf("%w: boom", createBooking.ErrInternal), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakeUseCase{err: fmt.Errorf("%w: details", tt.err)}, validBody)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"empty body", "", msgInvalidRequestBody},
		{"bad date", strings.Replace(validBody, "2026-03-06", "06.03.2026", 1), msgInvalidDate},
		{"bad time", strings.Replace(validBody, "09:00", "9am", 1), msgInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(t, uc, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMsg)
			assert.Nil(t, uc.got)
		})
	}
}

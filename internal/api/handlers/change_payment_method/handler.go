package change_payment_method

import (
	"errors"
	"net/http"

	"github.com/m04kA/HomeCare-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeCare-BookingService/internal/api/middleware"
	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/internal/service/bookings/models"
	"github.com/m04kA/HomeCare-BookingService/internal/service/payments"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidMethod      = "некорректный способ оплаты"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgCannotChange       = "способ оплаты можно изменить только до подтверждения бронирования"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/payment/method
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/payment/method - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ChangePaymentMethodRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/payment/method - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	payment, err := h.service.ChangeMethod(r.Context(), bookingID, domain.PaymentMethod(req.PaymentMethod), actor)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidMethod)

		case errors.Is(err, payments.ErrBookingNotFound), errors.Is(err, payments.ErrPaymentNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/payment/method - Access denied: booking_id=%d, user_id=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, payments.ErrCannotChangeMethod):
			handlers.RespondUnprocessable(w, msgCannotChange)

		default:
			h.logger.Error("PATCH /bookings/{id}/payment/method - Failed to change method: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/payment/method - Payment method changed: booking_id=%d, method=%s", bookingID, payment.Method)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainPayment(payment))
}

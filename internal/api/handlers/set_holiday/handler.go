package set_holiday

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/HomeCare-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

const (
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/holidays/{date}
// Свободные слоты даты переводятся в holiday, занятые не трогаются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req SetHolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /admin/holidays/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	count, err := h.service.SetHoliday(r.Context(), date, req.Note)
	if err != nil {
		h.logger.Error("POST /admin/holidays/{date} - Failed to set holiday: date=%s, error=%v", date.Format(domain.DateFormat), err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /admin/holidays/{date} - Holiday set: date=%s, slots=%d", date.Format(domain.DateFormat), count)
	handlers.RespondJSON(w, http.StatusOK, handlers.CountResponse{Count: count})
}

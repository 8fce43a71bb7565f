package prune_slots

import (
	"net/http"

	"github.com/m04kA/HomeCare-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

const (
	msgMissingDate = "дата обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle DELETE /api/v1/admin/slots?date=YYYY-MM-DD
// Удаляет только свободные слоты даты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if date == nil {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	count, err := h.service.DeleteAvailable(r.Context(), *date)
	if err != nil {
		h.logger.Error("DELETE /admin/slots - Failed to delete slots: date=%s, error=%v", date.Format(domain.DateFormat), err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("DELETE /admin/slots - Available slots deleted: date=%s, count=%d", date.Format(domain.DateFormat), count)
	handlers.RespondJSON(w, http.StatusOK, handlers.CountResponse{Count: count})
}

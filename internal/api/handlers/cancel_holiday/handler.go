package cancel_holiday

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/HomeCare-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

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

// Handle DELETE /api/v1/admin/holidays/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	count, err := h.service.CancelHoliday(r.Context(), date)
	if err != nil {
		h.logger.Error("DELETE /admin/holidays/{date} - Failed to cancel holiday: date=%s, error=%v", date.Format(domain.DateFormat), err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("DELETE /admin/holidays/{date} - Holiday cancelled: date=%s, slots=%d", date.Format(domain.DateFormat), count)
	handlers.RespondJSON(w, http.StatusOK, handlers.CountResponse{Count: count})
}

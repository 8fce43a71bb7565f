package get_schedule

import (
	"net/http"

	"github.com/m04kA/HomeCare-BookingService/internal/api/handlers"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.GetAll(r.Context())
	if err != nil {
		h.logger.Error("GET /schedule - Failed to get schedule: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	views := make([]handlers.ScheduleEntryView, len(entries))
	for i, e := range entries {
		views[i] = handlers.FromDomainScheduleEntry(e)
	}
	handlers.RespondJSON(w, http.StatusOK, views)
}

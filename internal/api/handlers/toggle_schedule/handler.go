package toggle_schedule

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/HomeCare-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/internal/service/schedule"
)

const (
	msgInvalidWeekday = "некорректный день недели"
	msgNotFound       = "день недели не найден в расписании"
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

// Handle PATCH /api/v1/admin/schedule/{weekday}/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	day := domain.Weekday(strings.ToLower(mux.Vars(r)["weekday"]))

	entry, err := h.service.ToggleActive(r.Context(), day)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidWeekday):
			handlers.RespondBadRequest(w, msgInvalidWeekday)

		case errors.Is(err, schedule.ErrEntryNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /admin/schedule/{weekday}/toggle - Failed to toggle: weekday=%s, error=%v", day, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/schedule/{weekday}/toggle - Weekday toggled: weekday=%s, active=%t", entry.Weekday, entry.IsActive)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainScheduleEntry(*entry))
}

package update_schedule

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
	msgInvalidWeekday     = "некорректный день недели"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeRange   = "время начала должно быть раньше времени окончания"
	msgNotFound           = "день недели не найден в расписании"
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

// Handle PUT /api/v1/admin/schedule/{weekday}
// Уже сгенерированные слоты не пересоздаются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	day := domain.Weekday(strings.ToLower(mux.Vars(r)["weekday"]))

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule/{weekday} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	entry, err := h.service.Update(r.Context(), day, req.ToDomainUpdate())
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidWeekday):
			handlers.RespondBadRequest(w, msgInvalidWeekday)

		case errors.Is(err, schedule.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, schedule.ErrEntryNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PUT /admin/schedule/{weekday} - Failed to update schedule: weekday=%s, error=%v", day, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/schedule/{weekday} - Schedule updated: weekday=%s, %s-%s, active=%t",
		entry.Weekday, entry.StartTime, entry.EndTime, entry.IsActive)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainScheduleEntry(*entry))
}

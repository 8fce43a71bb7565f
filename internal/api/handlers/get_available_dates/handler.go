package get_available_dates

import (
	"errors"
	"net/http"

	"github.com/m04kA/HomeCare-BookingService/internal/api/handlers"
	getAvailableDates "github.com/m04kA/HomeCare-BookingService/internal/usecase/get_available_dates"
)

const (
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange = "дата окончания раньше даты начала"
	msgRangeTooLong = "слишком длинный период"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/available-dates
// Query params: startDate, endDate (опционально, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	startDate, err := handlers.QueryDate(r, "startDate")
	if err != nil {
		h.logger.Warn("GET /slots/available-dates - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	endDate, err := handlers.QueryDate(r, "endDate")
	if err != nil {
		h.logger.Warn("GET /slots/available-dates - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableDates.Request{StartDate: startDate, EndDate: endDate})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrInvalidRange):
			h.logger.Warn("GET /slots/available-dates - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getAvailableDates.ErrRangeTooLong):
			h.logger.Warn("GET /slots/available-dates - Range too long: %v", err)
			handlers.RespondBadRequest(w, msgRangeTooLong)

		default:
			h.logger.Error("GET /slots/available-dates - Failed to get dates: error=%v", err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("GET /slots/available-dates - Dates retrieved successfully: dates_count=%d", len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

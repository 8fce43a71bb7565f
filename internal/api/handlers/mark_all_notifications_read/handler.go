package mark_all_notifications_read

import (
	"net/http"

	"github.com/m04kA/HomeCare-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeCare-BookingService/internal/api/middleware"
)

const msgMissingUserID = "отсутствует ID пользователя"

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/notifications/read-all
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	count, err := h.service.MarkAllAsRead(r.Context(), userID)
	if err != nil {
		h.logger.Error("PATCH /notifications/read-all - Failed to mark all read: user_id=%d, error=%v", userID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PATCH /notifications/read-all - Marked %d notifications read: user_id=%d", count, userID)
	handlers.RespondJSON(w, http.StatusOK, handlers.CountResponse{Count: count})
}

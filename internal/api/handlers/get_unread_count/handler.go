package get_unread_count

import (
	"net/http"

	"github.com/m04kA/HomeCare-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeCare-BookingService/internal/api/middleware"
)

const msgMissingUserID = "отсутствует ID пользователя"

// UnreadCountResponse HTTP response model
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}

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

// Handle GET /api/v1/notifications/unread-count
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	count, err := h.service.CountUnread(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /notifications/unread-count - Failed to count: user_id=%d, error=%v", userID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, UnreadCountResponse{Unread: count})
}

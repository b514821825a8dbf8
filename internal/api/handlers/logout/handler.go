package logout

import (
	"net/http"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
	"github.com/m04kA/SMC-EventLedger/internal/api/middleware"
)

const msgMissingToken = "отсутствует токен сессии"

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/logout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetToken(r.Context())
	if !ok {
		h.logger.Warn("POST /auth/logout - Missing session token")
		handlers.RespondUnauthorized(w, msgMissingToken)
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		h.logger.Error("POST /auth/logout - Failed to close session: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())
	h.logger.Info("POST /auth/logout - Session closed: user_id=%s", userID)
	handlers.RespondNoContent(w)
}

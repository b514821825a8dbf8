package list_expenses

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
	"github.com/m04kA/SMC-EventLedger/internal/service/expenses"
)

const msgInvalidParams = "некорректные параметры запроса"

type Handler struct {
	service ExpenseService
	logger  Logger
}

func NewHandler(service ExpenseService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/expenses
// Query params: search, category, method, timeframe, sort (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), ToServiceRequest(r))
	if err != nil {
		switch {
		case errors.Is(err, expenses.ErrInvalidInput):
			h.logger.Warn("GET /expenses - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams+": "+handlers.ErrorDetail(err, expenses.ErrInvalidInput))

		default:
			h.logger.Error("GET /expenses - Failed to list expenses: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /expenses - Expenses retrieved successfully: count=%d", result.Count)
	handlers.RespondJSON(w, http.StatusOK, result)
}

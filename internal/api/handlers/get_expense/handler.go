package get_expense

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
	"github.com/m04kA/SMC-EventLedger/internal/service/expenses"
)

const msgNotFound = "расход не найден"

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

// Handle GET /api/v1/expenses/{expenseId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	expenseID := mux.Vars(r)["expenseId"]

	expense, err := h.service.GetByID(r.Context(), expenseID)
	if err != nil {
		if errors.Is(err, expenses.ErrExpenseNotFound) {
			h.logger.Warn("GET /expenses/{id} - Expense not found: expense_id=%s", expenseID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /expenses/{id} - Failed to get expense: expense_id=%s, error=%v", expenseID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, expense)
}

package update_expense

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
	"github.com/m04kA/SMC-EventLedger/internal/service/expenses"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты расхода, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные расхода"
	msgNotFound           = "расход не найден"
)

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

// Handle PUT /api/v1/expenses/{expenseId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	expenseID := mux.Vars(r)["expenseId"]

	var req ExpenseRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /expenses/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PUT /expenses/{id} - Failed to parse expense date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	expense, err := h.service.Update(r.Context(), expenseID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, expenses.ErrExpenseNotFound):
			h.logger.Warn("PUT /expenses/{id} - Expense not found: expense_id=%s", expenseID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, expenses.ErrInvalidInput):
			h.logger.Warn("PUT /expenses/{id} - Invalid input: expense_id=%s, error=%v", expenseID, err)
			handlers.RespondBadRequest(w, msgInvalidInput+": "+handlers.ErrorDetail(err, expenses.ErrInvalidInput))

		default:
			h.logger.Error("PUT /expenses/{id} - Failed to update expense: expense_id=%s, error=%v", expenseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /expenses/{id} - Expense updated successfully: expense_id=%s", expenseID)
	handlers.RespondJSON(w, http.StatusOK, expense)
}

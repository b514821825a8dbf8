package create_expense

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
	"github.com/m04kA/SMC-EventLedger/internal/service/expenses"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты расхода, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные расхода"
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

// Handle POST /api/v1/expenses
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ExpenseRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /expenses - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /expenses - Failed to parse expense date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	expense, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, expenses.ErrInvalidInput):
			h.logger.Warn("POST /expenses - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput+": "+handlers.ErrorDetail(err, expenses.ErrInvalidInput))

		default:
			h.logger.Error("POST /expenses - Failed to create expense: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /expenses - Expense created successfully: expense_id=%s", expense.ID)
	handlers.RespondJSON(w, http.StatusCreated, expense)
}

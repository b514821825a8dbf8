package list_payments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
	"github.com/m04kA/SMC-EventLedger/internal/service/payments"
)

const msgInvalidParams = "некорректные параметры запроса"

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/payments
// Query params: search, status, method, bookingId, timeframe, sort (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), ToServiceRequest(r))
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("GET /payments - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams+": "+handlers.ErrorDetail(err, payments.ErrInvalidInput))

		default:
			h.logger.Error("GET /payments - Failed to list payments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /payments - Payments retrieved successfully: count=%d", result.Count)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package delete_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
	"github.com/m04kA/SMC-EventLedger/internal/service/payments"
)

const msgNotFound = "платеж не найден"

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

// Handle DELETE /api/v1/payments/{paymentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	paymentID := mux.Vars(r)["paymentId"]

	if err := h.service.Delete(r.Context(), paymentID); err != nil {
		if errors.Is(err, payments.ErrPaymentNotFound) {
			h.logger.Warn("DELETE /payments/{id} - Payment not found: payment_id=%s", paymentID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /payments/{id} - Failed to delete payment: payment_id=%s, error=%v", paymentID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /payments/{id} - Payment deleted: payment_id=%s", paymentID)
	handlers.RespondNoContent(w)
}

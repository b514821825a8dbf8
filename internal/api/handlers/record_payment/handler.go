package record_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
	recordPayment "github.com/m04kA/SMC-EventLedger/internal/usecase/record_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты платежа, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные платежа"
	msgBookingNotFound    = "бронирование не найдено"
	msgNothingPending     = "по бронированию нет остатка к оплате, укажите сумму явно"
)

type Handler struct {
	useCase RecordPaymentUseCase
	logger  Logger
}

func NewHandler(useCase RecordPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RecordPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /payments - Failed to parse payment date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, recordPayment.ErrInvalidInput):
			h.logger.Warn("POST /payments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput+": "+handlers.ErrorDetail(err, recordPayment.ErrInvalidInput))

		case errors.Is(err, recordPayment.ErrBookingNotFound):
			h.logger.Warn("POST /payments - Booking not found: booking_id=%s", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, recordPayment.ErrNothingPending):
			h.logger.Warn("POST /payments - Nothing pending: booking_id=%s", req.BookingID)
			handlers.RespondBadRequest(w, msgNothingPending)

		default:
			h.logger.Error("POST /payments - Failed to record payment: booking_id=%s, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments - Payment recorded successfully: payment_id=%s, booking_id=%s", result.ID, result.BookingID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

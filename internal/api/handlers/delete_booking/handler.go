package delete_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
	deleteBooking "github.com/m04kA/SMC-EventLedger/internal/usecase/delete_booking"
)

const (
	msgInvalidCascade = "некорректное значение cascade, ожидается true или false"
	msgNotFound       = "бронирование не найдено"
	msgHasPayments    = "по бронированию есть платежи, удалите их или передайте cascade=true"
)

type Handler struct {
	useCase DeleteBookingUseCase
	logger  Logger
}

func NewHandler(useCase DeleteBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{bookingId}?cascade=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	cascade := false
	if raw := handlers.OptionalQuery(r, "cascade"); raw != nil {
		v, err := strconv.ParseBool(*raw)
		if err != nil {
			h.logger.Warn("DELETE /bookings/{id} - Invalid cascade value: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCascade)
			return
		}
		cascade = v
	}

	result, err := h.useCase.Execute(r.Context(), &deleteBooking.Request{BookingID: bookingID, Cascade: cascade})
	if err != nil {
		switch {
		case errors.Is(err, deleteBooking.ErrBookingNotFound), errors.Is(err, deleteBooking.ErrInvalidInput):
			h.logger.Warn("DELETE /bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, deleteBooking.ErrBookingHasPayments):
			h.logger.Warn("DELETE /bookings/{id} - Booking has payments: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgHasPayments)

		default:
			h.logger.Error("DELETE /bookings/{id} - Failed to delete booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking deleted: booking_id=%s, deleted_payments=%d", bookingID, result.DeletedPayments)
	handlers.RespondJSON(w, http.StatusOK, result)
}

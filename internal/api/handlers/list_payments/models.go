package list_payments

import (
	"net/http"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
	"github.com/m04kA/SMC-EventLedger/internal/service/payments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(r *http.Request) *models.ListPaymentsRequest {
	q := r.URL.Query()
	return &models.ListPaymentsRequest{
		Search:    q.Get("search"),
		Status:    handlers.OptionalQuery(r, "status"),
		Method:    handlers.OptionalQuery(r, "method"),
		BookingID: handlers.OptionalQuery(r, "bookingId"),
		Timeframe: q.Get("timeframe"),
		Sort:      q.Get("sort"),
	}
}

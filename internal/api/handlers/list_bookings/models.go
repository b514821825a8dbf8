package list_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
	"github.com/m04kA/SMC-EventLedger/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(r *http.Request) *models.ListBookingsRequest {
	q := r.URL.Query()
	return &models.ListBookingsRequest{
		Search:    q.Get("search"),
		Status:    handlers.OptionalQuery(r, "status"),
		EventType: handlers.OptionalQuery(r, "eventType"),
		Timeframe: q.Get("timeframe"),
		Sort:      q.Get("sort"),
	}
}

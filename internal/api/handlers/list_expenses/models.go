package list_expenses

import (
	"net/http"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
	"github.com/m04kA/SMC-EventLedger/internal/service/expenses/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(r *http.Request) *models.ListExpensesRequest {
	q := r.URL.Query()
	return &models.ListExpensesRequest{
		Search:    q.Get("search"),
		Category:  handlers.OptionalQuery(r, "category"),
		Method:    handlers.OptionalQuery(r, "method"),
		Timeframe: q.Get("timeframe"),
		Sort:      q.Get("sort"),
	}
}

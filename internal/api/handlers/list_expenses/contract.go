package list_expenses

import (
	"context"

	"github.com/m04kA/SMC-EventLedger/internal/service/expenses/models"
)

type ExpenseService interface {
	List(ctx context.Context, req *models.ListExpensesRequest) (*models.ExpenseListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

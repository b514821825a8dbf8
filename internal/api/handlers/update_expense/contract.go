package update_expense

import (
	"context"

	"github.com/m04kA/SMC-EventLedger/internal/service/expenses/models"
)

type ExpenseService interface {
	Update(ctx context.Context, id string, req *models.ExpenseRequest) (*models.ExpenseResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_expense

import (
	"context"

	"github.com/m04kA/SMC-EventLedger/internal/service/expenses/models"
)

type ExpenseService interface {
	GetByID(ctx context.Context, id string) (*models.ExpenseResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

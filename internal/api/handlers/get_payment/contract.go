package get_payment

import (
	"context"

	"github.com/m04kA/SMC-EventLedger/internal/service/payments/models"
)

type PaymentService interface {
	GetByID(ctx context.Context, id string) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

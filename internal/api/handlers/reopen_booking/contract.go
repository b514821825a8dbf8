package reopen_booking

import (
	"context"

	"github.com/m04kA/SMC-EventLedger/internal/service/bookings/models"
)

type BookingService interface {
	Reopen(ctx context.Context, id string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

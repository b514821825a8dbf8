package delete_booking

import (
	"context"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	CountByBooking(ctx context.Context, bookingID string) (int, error)
	DeleteByBooking(ctx context.Context, bookingID string) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует события изменения журнала
type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, payload interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package financial_report

import (
	"context"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	List(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error)
}

// ExpenseRepository интерфейс репозитория расходов
type ExpenseRepository interface {
	List(ctx context.Context, filter domain.ExpenseFilter) ([]*domain.Expense, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package financial_report

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
)

// UseCase use case для годового финансового отчёта
type UseCase struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	expenseRepo ExpenseRepository
	txManager   TransactionManager
	location    *time.Location
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
// Границы года считаются в UTC
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	expenseRepo ExpenseRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		expenseRepo: expenseRepo,
		txManager:   txManager,
		location:    time.UTC,
		logger:      logger,
	}
}

// Execute строит финансовый отчёт за год
func (uc *UseCase) Execute(ctx context.Context, year int) (*Response, error) {
	report, err := uc.build(ctx, year)
	if err != nil {
		return nil, err
	}
	return toResponse(report), nil
}

func (uc *UseCase) build(ctx context.Context, year int) (*domain.FinancialReport, error) {
	uc.logger.Info("FinancialReport: building report for year=%d", year)

	if year < MinYear || year > MaxYear {
		uc.logger.Warn("FinancialReport: invalid year=%d", year)
		return nil, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}

	query := domain.ListQuery{Period: domain.YearPeriod(year, uc.location)}

	var (
		bookings []*domain.Booking
		payments []*domain.Payment
		expenses []*domain.Expense
	)

	// Все три выборки читаются из одного снимка
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error

		bookings, err = uc.bookingRepo.List(txCtx, domain.BookingFilter{ListQuery: query})
		if err != nil {
			uc.logger.Error("FinancialReport: failed to list bookings: %v", err)
			return fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
		}

		payments, err = uc.paymentRepo.List(txCtx, domain.PaymentFilter{ListQuery: query})
		if err != nil {
			uc.logger.Error("FinancialReport: failed to list payments: %v", err)
			return fmt.Errorf("%w: failed to list payments: %v", ErrInternal, err)
		}

		expenses, err = uc.expenseRepo.List(txCtx, domain.ExpenseFilter{ListQuery: query})
		if err != nil {
			uc.logger.Error("FinancialReport: failed to list expenses: %v", err)
			return fmt.Errorf("%w: failed to list expenses: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	report := domain.BuildFinancialReport(year, bookings, payments, expenses)

	uc.logger.Info("FinancialReport: year=%d, bookings=%d, payments=%d, expenses=%d",
		year, len(bookings), len(payments), len(expenses))
	return report, nil
}

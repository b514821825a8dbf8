package ledger_transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
	bookingRepo "github.com/m04kA/SMC-EventLedger/internal/infra/storage/booking"
	expenseRepo "github.com/m04kA/SMC-EventLedger/internal/infra/storage/expense"
	paymentRepo "github.com/m04kA/SMC-EventLedger/internal/infra/storage/payment"
	"github.com/m04kA/SMC-EventLedger/internal/integrations/eventbus"
)

// UseCase перенос журнала из выгрузки старого приложения и обратно
type UseCase struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	expenseRepo ExpenseRepository
	txManager   TransactionManager
	events      EventPublisher
	now         func() time.Time
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	expenseRepo ExpenseRepository,
	txManager TransactionManager,
	events EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		expenseRepo: expenseRepo,
		txManager:   txManager,
		events:      events,
		now:         time.Now,
		logger:      logger,
	}
}

// Decode читает выгрузку из JSON
// Отсутствующие коллекции считаются пустыми
func Decode(r io.Reader) (*Ledger, error) {
	var ledger Ledger
	if err := json.NewDecoder(r).Decode(&ledger); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &ledger, nil
}

// Import загружает выгрузку в журнал одной транзакцией
// Некорректные записи и записи с уже существующим ID пропускаются и попадают в отчет.
// Записи сохраняют порядок выгрузки.
func (uc *UseCase) Import(ctx context.Context, ledger *Ledger) (*ImportResult, error) {
	if ledger == nil {
		return nil, ErrInvalidInput
	}

	uc.logger.Info("ImportLedger: bookings=%d, payments=%d, expenses=%d",
		len(ledger.Bookings), len(ledger.Payments), len(ledger.Expenses))

	result := newImportResult()

	// Порядок вставки задается через created_at
	base := uc.now().UTC()
	seq := 0
	createdAt := func() time.Time {
		seq++
		return base.Add(time.Duration(seq) * time.Microsecond)
	}

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		*result = *newImportResult()
		seq = 0

		// 1. Бронирования
		for _, lb := range ledger.Bookings {
			booking, reason := toDomainBooking(lb)
			if reason != "" {
				result.Bookings.skip(lb.ID, reason)
				continue
			}

			exists, err := uc.bookingExists(txCtx, booking.ID)
			if err != nil {
				return err
			}
			if exists {
				result.Bookings.skip(lb.ID, reasonExists)
				continue
			}

			booking.CreatedAt = createdAt()
			if _, err := uc.bookingRepo.Create(txCtx, booking); err != nil {
				uc.logger.Error("ImportLedger: failed to create booking id=%s: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
			}
			result.Bookings.Imported++
		}

		// 2. Платежи, бронирование должно существовать в журнале или в выгрузке
		for _, lp := range ledger.Payments {
			payment, reason := toDomainPayment(lp)
			if reason != "" {
				result.Payments.skip(lp.ID, reason)
				continue
			}

			known, err := uc.bookingExists(txCtx, payment.BookingID)
			if err != nil {
				return err
			}
			if !known {
				result.Payments.skip(lp.ID, reasonUnknownBooking)
				continue
			}

			_, err = uc.paymentRepo.GetByID(txCtx, payment.ID)
			if err == nil {
				result.Payments.skip(lp.ID, reasonExists)
				continue
			}
			if !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				uc.logger.Error("ImportLedger: failed to get payment id=%s: %v", payment.ID, err)
				return fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
			}

			payment.CreatedAt = createdAt()
			if _, err := uc.paymentRepo.Create(txCtx, payment); err != nil {
				uc.logger.Error("ImportLedger: failed to create payment id=%s: %v", payment.ID, err)
				return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
			}
			result.Payments.Imported++
		}

		// 3. Расходы
		for _, le := range ledger.Expenses {
			expense, reason := toDomainExpense(le)
			if reason != "" {
				result.Expenses.skip(le.ID, reason)
				continue
			}

			_, err := uc.expenseRepo.GetByID(txCtx, expense.ID)
			if err == nil {
				result.Expenses.skip(le.ID, reasonExists)
				continue
			}
			if !errors.Is(err, expenseRepo.ErrExpenseNotFound) {
				uc.logger.Error("ImportLedger: failed to get expense id=%s: %v", expense.ID, err)
				return fmt.Errorf("%w: failed to get expense: %v", ErrInternal, err)
			}

			expense.CreatedAt = createdAt()
			if _, err := uc.expenseRepo.Create(txCtx, expense); err != nil {
				uc.logger.Error("ImportLedger: failed to create expense id=%s: %v", expense.ID, err)
				return fmt.Errorf("%w: failed to create expense: %v", ErrInternal, err)
			}
			result.Expenses.Imported++
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ImportLedger: imported bookings=%d, payments=%d, expenses=%d; skipped %d/%d/%d",
		result.Bookings.Imported, result.Payments.Imported, result.Expenses.Imported,
		len(result.Bookings.Skipped), len(result.Payments.Skipped), len(result.Expenses.Skipped))

	if err := uc.events.Publish(ctx, eventbus.LedgerImported, "ledger", result); err != nil {
		uc.logger.Warn("ImportLedger: event not sent: %v", err)
	}

	return result, nil
}

// Export выгружает весь журнал в формате старого приложения
func (uc *UseCase) Export(ctx context.Context) (*Ledger, error) {
	uc.logger.Info("ExportLedger: start")

	var (
		bookings []*domain.Booking
		payments []*domain.Payment
		expenses []*domain.Expense
	)

	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error

		bookings, err = uc.bookingRepo.List(txCtx, domain.BookingFilter{})
		if err != nil {
			return fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
		}
		payments, err = uc.paymentRepo.List(txCtx, domain.PaymentFilter{})
		if err != nil {
			return fmt.Errorf("%w: failed to list payments: %v", ErrInternal, err)
		}
		expenses, err = uc.expenseRepo.List(txCtx, domain.ExpenseFilter{})
		if err != nil {
			return fmt.Errorf("%w: failed to list expenses: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		uc.logger.Error("ExportLedger: %v", err)
		return nil, err
	}

	ledger := &Ledger{
		Bookings: make([]LegacyBooking, 0, len(bookings)),
		Payments: make([]LegacyPayment, 0, len(payments)),
		Expenses: make([]LegacyExpense, 0, len(expenses)),
	}
	for _, b := range bookings {
		ledger.Bookings = append(ledger.Bookings, fromDomainBooking(b))
	}
	for _, p := range payments {
		ledger.Payments = append(ledger.Payments, fromDomainPayment(p))
	}
	for _, e := range expenses {
		ledger.Expenses = append(ledger.Expenses, fromDomainExpense(e))
	}

	uc.logger.Info("ExportLedger: exported bookings=%d, payments=%d, expenses=%d",
		len(ledger.Bookings), len(ledger.Payments), len(ledger.Expenses))

	return ledger, nil
}

func (uc *UseCase) bookingExists(ctx context.Context, id string) (bool, error) {
	_, err := uc.bookingRepo.GetByID(ctx, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return false, nil
	}
	uc.logger.Error("ImportLedger: failed to get booking id=%s: %v", id, err)
	return false, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
}

package record_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
	bookingRepo "github.com/m04kA/SMC-EventLedger/internal/infra/storage/booking"
	"github.com/m04kA/SMC-EventLedger/internal/integrations/eventbus"
)

// UseCase use case для записи платежа по бронированию
type UseCase struct {
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	txManager    TransactionManager
	events       EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	events EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		txManager:    txManager,
		events:       events,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute записывает платеж
// Бронирование проверяется в той же транзакции, что и вставка платежа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RecordPayment: booking id=%s, method=%s", req.BookingID, req.PaymentMethod)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RecordPayment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	method, _ := domain.ParsePaymentMethod(req.PaymentMethod)
	status := domain.PaymentCompleted
	if req.Status != "" {
		status, _ = domain.ParsePaymentStatus(req.Status)
	}

	var result *domain.Payment

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Бронирование должно существовать
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RecordPayment: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RecordPayment: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3. Сумма по умолчанию - остаток к оплате
		amount := booking.PendingAmount()
		if req.Amount != nil {
			amount = *req.Amount
		} else if !amount.IsPositive() {
			uc.logger.Warn("RecordPayment: booking id=%s has nothing pending", req.BookingID)
			return ErrNothingPending
		}

		payment := &domain.Payment{
			BookingID:      booking.ID,
			Amount:         domain.RoundMoney(amount),
			Method:         method,
			Status:         status,
			PaidOn:         paymentDay(req.PaymentDate, now),
			TransactionRef: newTransactionRef(now),
			Notes:          req.Notes,
		}
		if err := payment.Validate(); err != nil {
			uc.logger.Warn("RecordPayment: validation failed: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 4. Сохраняем платеж
		created, err := uc.paymentRepo.Create(txCtx, payment)
		if err != nil {
			uc.logger.Error("RecordPayment: failed to create payment: %v", err)
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}
		created.ClientName = booking.ClientName

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RecordPayment: successfully recorded payment id=%s, ref=%s", result.ID, result.TransactionRef)

	resp := &Response{
		ID:             result.ID,
		BookingID:      result.BookingID,
		ClientName:     result.ClientName,
		Amount:         result.Amount,
		PaymentMethod:  string(result.Method),
		Status:         string(result.Status),
		PaymentDate:    result.PaidOn,
		TransactionRef: result.TransactionRef,
		Notes:          result.Notes,
		CreatedAt:      result.CreatedAt,
	}

	if err := uc.events.Publish(ctx, eventbus.PaymentRecorded, result.ID, resp); err != nil {
		uc.logger.Warn("RecordPayment: event for payment id=%s not sent: %v", result.ID, err)
	}

	return resp, nil
}

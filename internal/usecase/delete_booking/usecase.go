package delete_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bookingRepo "github.com/m04kA/SMC-EventLedger/internal/infra/storage/booking"
	"github.com/m04kA/SMC-EventLedger/internal/integrations/eventbus"
)

// UseCase use case для удаления бронирования
type UseCase struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	txManager   TransactionManager
	events      EventPublisher
	logger      Logger
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
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		events:      events,
		logger:      logger,
	}
}

// Execute удаляет бронирование
// Бронирование с платежами удаляется только при Cascade, платежи удаляются в той же транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DeleteBooking: booking id=%s, cascade=%t", req.BookingID, req.Cascade)

	if strings.TrimSpace(req.BookingID) == "" {
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	resp := &Response{BookingID: req.BookingID}

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Бронирование должно существовать
		if _, err := uc.bookingRepo.GetByID(txCtx, req.BookingID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("DeleteBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("DeleteBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Платежи не должны остаться без бронирования
		count, err := uc.paymentRepo.CountByBooking(txCtx, req.BookingID)
		if err != nil {
			uc.logger.Error("DeleteBooking: failed to count payments: %v", err)
			return fmt.Errorf("%w: failed to count payments: %v", ErrInternal, err)
		}

		if count > 0 {
			if !req.Cascade {
				uc.logger.Warn("DeleteBooking: booking id=%s has %d payments", req.BookingID, count)
				return fmt.Errorf("%w: %d payments recorded", ErrBookingHasPayments, count)
			}

			deleted, err := uc.paymentRepo.DeleteByBooking(txCtx, req.BookingID)
			if err != nil {
				uc.logger.Error("DeleteBooking: failed to delete payments: %v", err)
				return fmt.Errorf("%w: failed to delete payments: %v", ErrInternal, err)
			}
			resp.DeletedPayments = deleted
		}

		// 3. Удаляем бронирование
		if err := uc.bookingRepo.Delete(txCtx, req.BookingID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("DeleteBooking: failed to delete booking: %v", err)
			return fmt.Errorf("%w: failed to delete booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if err := uc.events.Publish(ctx, eventbus.BookingDeleted, req.BookingID, resp); err != nil {
		uc.logger.Warn("DeleteBooking: event for booking id=%s not sent: %v", req.BookingID, err)
	}

	uc.logger.Info("DeleteBooking: deleted booking id=%s with %d payments", req.BookingID, resp.DeletedPayments)
	return resp, nil
}

package payments

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/SMC-EventLedger/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-EventLedger/internal/infra/storage/payment"
	"github.com/m04kA/SMC-EventLedger/internal/integrations/eventbus"
	"github.com/m04kA/SMC-EventLedger/internal/service/payments/models"
)

// Service сервис для чтения и удаления платежей
// Запись платежа выполняет use case record_payment
type Service struct {
	paymentRepo  PaymentRepository
	bookingRepo  BookingRepository
	events       EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	events EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo:  paymentRepo,
		bookingRepo:  bookingRepo,
		events:       events,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает платеж по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.PaymentResponse, error) {
	s.logger.Info("GetByID: fetching payment id=%s", id)

	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("GetByID: payment id=%s not found", id)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("GetByID: repository error for payment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPayment(payment), nil
}

// List получает платежи с фильтрами и итогом по завершённым платежам
func (s *Service) List(ctx context.Context, req *models.ListPaymentsRequest) (*models.PaymentListResponse, error) {
	s.logger.Info("List: fetching payments search=%q, timeframe=%q, sort=%q", req.Search, req.Timeframe, req.Sort)

	filter, err := req.ToDomainFilter(s.timeProvider.Now())
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	payments, err := s.paymentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d payments", len(payments))
	return models.FromDomainPaymentList(payments), nil
}

// ListByBooking получает платежи по бронированию в порядке записи
func (s *Service) ListByBooking(ctx context.Context, bookingID string) (*models.PaymentListResponse, error) {
	s.logger.Info("ListByBooking: fetching payments for booking id=%s", bookingID)

	if _, err := s.bookingRepo.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("ListByBooking: booking id=%s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("ListByBooking: failed to get booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: ListByBooking - failed to get booking: %v", ErrInternal, err)
	}

	payments, err := s.paymentRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		s.logger.Error("ListByBooking: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: ListByBooking - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPaymentList(payments), nil
}

// Delete удаляет платеж
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting payment id=%s", id)

	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("Delete: payment id=%s not found", id)
			return ErrPaymentNotFound
		}
		s.logger.Error("Delete: repository error for payment id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.events.Publish(ctx, eventbus.PaymentDeleted, id, map[string]string{"id": id}); err != nil {
		s.logger.Warn("Delete: event for payment id=%s not sent: %v", id, err)
	}

	s.logger.Info("Delete: successfully deleted payment id=%s", id)
	return nil
}

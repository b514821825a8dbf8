package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
	bookingRepo "github.com/m04kA/SMC-EventLedger/internal/infra/storage/booking"
	"github.com/m04kA/SMC-EventLedger/internal/integrations/eventbus"
	"github.com/m04kA/SMC-EventLedger/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo         BookingRepository
	txManager           TransactionManager
	events              EventPublisher
	timeProvider        TimeProvider
	maxConcurrentEvents int
	logger              Logger
}

// NewService создает новый экземпляр сервиса бронирований
// maxConcurrentEvents - сколько активных бронирований может пересекаться по времени
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	events EventPublisher,
	maxConcurrentEvents int,
	logger Logger,
) *Service {
	if maxConcurrentEvents <= 0 {
		maxConcurrentEvents = domain.DefaultMaxConcurrentEvents
	}

	return &Service{
		bookingRepo:         bookingRepo,
		txManager:           txManager,
		events:              events,
		timeProvider:        &RealTimeProvider{},
		maxConcurrentEvents: maxConcurrentEvents,
		logger:              logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с поиском, фильтрами, периодом и сортировкой
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings search=%q, timeframe=%q, sort=%q", req.Search, req.Timeframe, req.Sort)

	filter, err := req.ToDomainFilter(s.timeProvider.Now())
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Update перезаписывает поля бронирования
// Статус пересчитывается из сумм (закрытые бронирования сохраняют свой статус).
// Если изменилось время активного бронирования, повторяется проверка пересечений.
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: updating booking id=%s", id)

	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "Update", id)
		if err != nil {
			return err
		}

		timesChanged := !booking.StartAt.Equal(req.StartAt) || !booking.EndAt.Equal(req.EndAt)

		req.ApplyTo(booking)
		if err := booking.Validate(); err != nil {
			s.logger.Warn("Update: validation failed for booking id=%s: %v", id, err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if timesChanged && booking.IsActive() {
			if err := s.checkSchedule(txCtx, "Update", booking); err != nil {
				return err
			}
		}

		booking.Status = domain.ResolveStatus(booking)

		if err := s.bookingRepo.Update(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Update: repository error for booking id=%s: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainBooking(result)
	s.publish(ctx, eventbus.BookingUpdated, id, resp)

	s.logger.Info("Update: successfully updated booking id=%s, status=%s", id, result.Status)
	return resp, nil
}

// UpdateStatus закрывает бронирование (Cancelled или Completed)
// Pending и Confirmed вычисляются из сумм и вручную не выставляются
func (s *Service) UpdateStatus(ctx context.Context, id string, status string) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s", id, status)

	newStatus, ok := domain.ParseBookingStatus(status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", status, id)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	if !newStatus.IsTerminal() {
		s.logger.Warn("UpdateStatus: status=%s is derived, booking id=%s", newStatus, id)
		return nil, ErrStatusDerived
	}

	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}

		booking.Status = newStatus
		booking.Status = domain.ResolveStatus(booking)

		if err := s.setStatus(txCtx, "UpdateStatus", booking); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainBooking(result)
	s.publish(ctx, eventbus.BookingStatusChanged, id, resp)

	s.logger.Info("UpdateStatus: successfully updated booking id=%s to status=%s", id, result.Status)
	return resp, nil
}

// Reopen снимает закрывающий статус и заново вычисляет его из сумм
// Отменённое бронирование снова занимает время, поэтому проверяются пересечения
func (s *Service) Reopen(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("Reopen: reopening booking id=%s", id)

	var (
		result  *domain.Booking
		changed bool
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "Reopen", id)
		if err != nil {
			return err
		}

		if !booking.Status.IsTerminal() {
			s.logger.Info("Reopen: booking id=%s is already open, status=%s", id, booking.Status)
			result = booking
			return nil
		}

		if booking.Status == domain.StatusCancelled {
			if err := s.checkSchedule(txCtx, "Reopen", booking); err != nil {
				return err
			}
		}

		booking.Status = ""
		booking.Status = domain.ResolveStatus(booking)

		if err := s.setStatus(txCtx, "Reopen", booking); err != nil {
			return err
		}

		result = booking
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainBooking(result)
	if changed {
		s.publish(ctx, eventbus.BookingStatusChanged, id, resp)
	}

	s.logger.Info("Reopen: booking id=%s has status=%s", id, result.Status)
	return resp, nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) setStatus(ctx context.Context, op string, booking *domain.Booking) error {
	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, booking.Status); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found during update", op, booking.ID)
			return ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, booking.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return nil
}

// checkSchedule проверяет, что бронирование не превышает лимит одновременных мероприятий
func (s *Service) checkSchedule(ctx context.Context, op string, booking *domain.Booking) error {
	overlapping, err := s.bookingRepo.ListOverlapping(ctx, booking.StartAt, booking.EndAt, booking.ID)
	if err != nil {
		s.logger.Error("%s: failed to get overlapping bookings: %v", op, err)
		return fmt.Errorf("%w: %s - failed to get overlapping bookings: %v", ErrInternal, op, err)
	}

	count := domain.CountOverlapping(overlapping, booking.StartAt, booking.EndAt)
	if count >= s.maxConcurrentEvents {
		s.logger.Warn("%s: schedule conflict for booking id=%s, %d/%d events at that time",
			op, booking.ID, count, s.maxConcurrentEvents)
		return ErrScheduleConflict
	}

	return nil
}

func (s *Service) publish(ctx context.Context, eventType, key string, payload interface{}) {
	if err := s.events.Publish(ctx, eventType, key, payload); err != nil {
		s.logger.Warn("publish: event %s for id=%s not sent: %v", eventType, key, err)
	}
}

package create_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
	"github.com/m04kA/SMC-EventLedger/internal/integrations/eventbus"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo         BookingRepository
	txManager           TransactionManager
	events              EventPublisher
	maxConcurrentEvents int
	logger              Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	events EventPublisher,
	maxConcurrentEvents int,
	logger Logger,
) *UseCase {
	if maxConcurrentEvents <= 0 {
		maxConcurrentEvents = domain.DefaultMaxConcurrentEvents
	}

	return &UseCase{
		bookingRepo:         bookingRepo,
		txManager:           txManager,
		events:              events,
		maxConcurrentEvents: maxConcurrentEvents,
		logger:              logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%q, eventType=%s, start=%s, end=%s",
		req.ClientName, req.EventType, req.StartAt.Format(domain.DateTimeFormat), req.EndAt.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных и вычисление статуса
	booking, err := buildBooking(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 2. Проверка пересечений и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Активные бронирования, пересекающиеся по времени (FOR UPDATE на PostgreSQL)
		bookings, err := uc.bookingRepo.ListOverlapping(txCtx, booking.StartAt, booking.EndAt, "")
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to get overlapping bookings: %v", ErrInternal, err)
		}

		// 2.2. Если MaxConcurrentEvents = 1, допустимо overlappingCount = 0
		overlappingCount := countOverlappingBookings(booking.StartAt, booking.EndAt, bookings)
		if overlappingCount >= uc.maxConcurrentEvents {
			uc.logger.Warn("CreateBooking: schedule conflict, %d/%d events at that time",
				overlappingCount, uc.maxConcurrentEvents)
			return ErrScheduleConflict
		}

		// 2.3. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, status=%s", result.ID, result.Status)

	resp := toResponse(result)
	if err := uc.events.Publish(ctx, eventbus.BookingCreated, result.ID, resp); err != nil {
		uc.logger.Warn("CreateBooking: event for booking id=%s not sent: %v", result.ID, err)
	}

	return resp, nil
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:            b.ID,
		ClientName:    b.ClientName,
		ClientPhone:   b.ClientPhone,
		EventType:     string(b.EventType),
		StartAt:       b.StartAt,
		EndAt:         b.EndAt,
		Location:      b.Location,
		TotalAmount:   b.TotalAmount,
		DepositAmount: b.DepositAmount,
		PendingAmount: b.PendingAmount(),
		Status:        string(b.Status),
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

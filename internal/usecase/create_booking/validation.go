package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
)

// buildBooking собирает и валидирует бронирование из запроса
func buildBooking(req *Request) (*domain.Booking, error) {
	eventType, ok := domain.ParseEventType(req.EventType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown eventType %q", ErrInvalidInput, req.EventType)
	}

	booking := &domain.Booking{
		ClientName:    strings.TrimSpace(req.ClientName),
		ClientPhone:   strings.TrimSpace(req.ClientPhone),
		EventType:     eventType,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		Location:      strings.TrimSpace(req.Location),
		TotalAmount:   domain.RoundMoney(req.TotalAmount),
		DepositAmount: domain.RoundMoney(req.DepositAmount),
		Notes:         req.Notes,
	}

	if err := booking.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Статус никогда не приходит от клиента
	booking.Status = domain.ResolveStatus(booking)

	return booking, nil
}

// countOverlappingBookings подсчитывает активные бронирования, пересекающиеся с [start, end)
// Граничные случаи (окончание одного = начало другого) не считаются пересечением
func countOverlappingBookings(start, end time.Time, bookings []*domain.Booking) int {
	return domain.CountOverlapping(bookings, start, end)
}

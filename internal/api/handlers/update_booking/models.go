package update_booking

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
	"github.com/m04kA/SMC-EventLedger/internal/service/bookings/models"
)

// UpdateBookingRequest HTTP request model
// Бронирование заменяется целиком, статус не передается
type UpdateBookingRequest struct {
	ClientName    string          `json:"clientName"`
	ClientPhone   string          `json:"clientPhone"`
	EventType     string          `json:"eventType"`
	StartDateTime string          `json:"startDateTime"`
	EndDateTime   string          `json:"endDateTime"`
	Location      string          `json:"location"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	DepositAmount decimal.Decimal `json:"depositAmount"`
	Notes         *string         `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateBookingRequest) ToServiceRequest() (*models.UpdateBookingRequest, error) {
	startAt, err := handlers.ParseDateTime(r.StartDateTime)
	if err != nil {
		return nil, fmt.Errorf("startDateTime: %w", err)
	}

	endAt, err := handlers.ParseDateTime(r.EndDateTime)
	if err != nil {
		return nil, fmt.Errorf("endDateTime: %w", err)
	}

	return &models.UpdateBookingRequest{
		ClientName:    r.ClientName,
		ClientPhone:   r.ClientPhone,
		EventType:     r.EventType,
		StartAt:       startAt,
		EndAt:         endAt,
		Location:      r.Location,
		TotalAmount:   r.TotalAmount,
		DepositAmount: r.DepositAmount,
		Notes:         r.Notes,
	}, nil
}

package create_booking

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-EventLedger/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientName    string          `json:"clientName"`
	ClientPhone   string          `json:"clientPhone"`
	EventType     string          `json:"eventType"`
	StartDateTime string          `json:"startDateTime"` // "2025-10-15T18:00"
	EndDateTime   string          `json:"endDateTime"`   // "2025-10-15T23:00"
	Location      string          `json:"location"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	DepositAmount decimal.Decimal `json:"depositAmount"`
	Notes         *string         `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            string          `json:"id"`
	ClientName    string          `json:"clientName"`
	ClientPhone   string          `json:"clientPhone"`
	EventType     string          `json:"eventType"`
	StartAt       time.Time       `json:"startAt"`
	EndAt         time.Time       `json:"endAt"`
	Location      string          `json:"location"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	DepositAmount decimal.Decimal `json:"depositAmount"`
	PendingAmount decimal.Decimal `json:"pendingAmount"`
	Status        string          `json:"status"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	startAt, err := handlers.ParseDateTime(r.StartDateTime)
	if err != nil {
		return nil, fmt.Errorf("startDateTime: %w", err)
	}

	endAt, err := handlers.ParseDateTime(r.EndDateTime)
	if err != nil {
		return nil, fmt.Errorf("endDateTime: %w", err)
	}

	return &createBooking.Request{
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

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		ClientName:    resp.ClientName,
		ClientPhone:   resp.ClientPhone,
		EventType:     resp.EventType,
		StartAt:       resp.StartAt,
		EndAt:         resp.EndAt,
		Location:      resp.Location,
		TotalAmount:   resp.TotalAmount,
		DepositAmount: resp.DepositAmount,
		PendingAmount: resp.PendingAmount,
		Status:        resp.Status,
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt,
		UpdatedAt:     resp.UpdatedAt,
	}
}

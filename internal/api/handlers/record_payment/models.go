package record_payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
	"github.com/m04kA/SMC-EventLedger/internal/domain"
	recordPayment "github.com/m04kA/SMC-EventLedger/internal/usecase/record_payment"
)

// RecordPaymentRequest HTTP request model
type RecordPaymentRequest struct {
	BookingID     string           `json:"bookingId"`
	Amount        *decimal.Decimal `json:"amount,omitempty"` // не задана - остаток к оплате
	PaymentMethod string           `json:"paymentMethod"`
	Status        string           `json:"status,omitempty"`      // по умолчанию completed
	PaymentDate   string           `json:"paymentDate,omitempty"` // "2025-10-15", по умолчанию сегодня
	Notes         *string          `json:"notes,omitempty"`
}

// PaymentResponse HTTP response model
type PaymentResponse struct {
	ID             string          `json:"id"`
	BookingID      string          `json:"bookingId"`
	ClientName     string          `json:"clientName"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  string          `json:"paymentMethod"`
	Status         string          `json:"status"`
	PaymentDate    string          `json:"paymentDate"`
	TransactionRef string          `json:"transactionRef"`
	Notes          *string         `json:"notes,omitempty"`
	CreatedAt      string          `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RecordPaymentRequest) ToUseCaseRequest() (*recordPayment.Request, error) {
	paymentDate, err := handlers.ParseDate(r.PaymentDate)
	if err != nil {
		return nil, err
	}

	return &recordPayment.Request{
		BookingID:     r.BookingID,
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
		Status:        r.Status,
		PaymentDate:   paymentDate,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *recordPayment.Response) *PaymentResponse {
	return &PaymentResponse{
		ID:             resp.ID,
		BookingID:      resp.BookingID,
		ClientName:     resp.ClientName,
		Amount:         resp.Amount,
		PaymentMethod:  resp.PaymentMethod,
		Status:         resp.Status,
		PaymentDate:    resp.PaymentDate.Format(domain.DateFormat),
		TransactionRef: resp.TransactionRef,
		Notes:          resp.Notes,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
	}
}

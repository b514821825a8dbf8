package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
)

// ListPaymentsRequest запрос на получение списка платежей
type ListPaymentsRequest struct {
	Search    string
	Status    *string
	Method    *string
	BookingID *string
	Timeframe string
	Sort      string
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListPaymentsRequest) ToDomainFilter(now time.Time) (domain.PaymentFilter, error) {
	query, err := domain.NewListQuery(r.Search, r.Timeframe, r.Sort, now)
	if err != nil {
		return domain.PaymentFilter{}, err
	}

	filter := domain.PaymentFilter{ListQuery: query}

	if r.Status != nil {
		status, ok := domain.ParsePaymentStatus(*r.Status)
		if !ok {
			return filter, fmt.Errorf("unknown status %q", *r.Status)
		}
		filter.Status = &status
	}

	if r.Method != nil {
		method, ok := domain.ParsePaymentMethod(*r.Method)
		if !ok {
			return filter, fmt.Errorf("unknown method %q", *r.Method)
		}
		filter.Method = &method
	}

	if r.BookingID != nil {
		if id := strings.TrimSpace(*r.BookingID); id != "" {
			filter.BookingID = &id
		}
	}

	return filter, nil
}

// PaymentResponse ответ с данными платежа
type PaymentResponse struct {
	ID             string          `json:"id"`
	BookingID      string          `json:"bookingId"`
	ClientName     string          `json:"clientName,omitempty"` // Имя клиента из бронирования
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  string          `json:"paymentMethod"`
	Status         string          `json:"status"`
	PaymentDate    string          `json:"paymentDate"` // "2025-10-15"
	TransactionRef string          `json:"transactionRef"`
	Notes          *string         `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// PaymentListResponse ответ со списком платежей
type PaymentListResponse struct {
	Payments       []PaymentResponse `json:"payments"`
	Count          int               `json:"count"`
	CompletedTotal decimal.Decimal   `json:"completedTotal"` // Сумма завершённых платежей в выборке
}

// FromDomainPayment конвертирует domain модель в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}

	return &PaymentResponse{
		ID:             p.ID,
		BookingID:      p.BookingID,
		ClientName:     p.ClientName,
		Amount:         p.Amount,
		PaymentMethod:  string(p.Method),
		Status:         string(p.Status),
		PaymentDate:    p.PaidOn.Format(domain.DateFormat),
		TransactionRef: p.TransactionRef,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
	}
}

// FromDomainPaymentList конвертирует список domain моделей в DTO и считает итог
func FromDomainPaymentList(payments []*domain.Payment) *PaymentListResponse {
	resp := &PaymentListResponse{
		Payments:       make([]PaymentResponse, 0, len(payments)),
		CompletedTotal: decimal.Zero,
	}

	for _, payment := range payments {
		if payment == nil {
			continue
		}
		resp.Payments = append(resp.Payments, *FromDomainPayment(payment))
		if payment.IsCompleted() {
			resp.CompletedTotal = resp.CompletedTotal.Add(payment.Amount)
		}
	}
	resp.Count = len(resp.Payments)

	return resp
}

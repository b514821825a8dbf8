package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
)

// Request модели

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	Search    string  `json:"search,omitempty"`
	Status    *string `json:"status,omitempty"`    // Фильтр по статусу (опционально)
	EventType *string `json:"eventType,omitempty"` // Фильтр по типу мероприятия (опционально)
	Timeframe string  `json:"timeframe,omitempty"` // all, upcoming, past, thisMonth, ...
	Sort      string  `json:"sort,omitempty"`      // date, dateAsc, amountDesc, amountAsc
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter(now time.Time) (domain.BookingFilter, error) {
	query, err := domain.NewListQuery(r.Search, r.Timeframe, r.Sort, now)
	if err != nil {
		return domain.BookingFilter{}, err
	}

	filter := domain.BookingFilter{ListQuery: query}

	if r.Status != nil {
		status, ok := domain.ParseBookingStatus(*r.Status)
		if !ok {
			return filter, fmt.Errorf("unknown status %q", *r.Status)
		}
		filter.Status = &status
	}

	if r.EventType != nil {
		eventType, ok := domain.ParseEventType(*r.EventType)
		if !ok {
			return filter, fmt.Errorf("unknown eventType %q", *r.EventType)
		}
		filter.EventType = &eventType
	}

	return filter, nil
}

// UpdateBookingRequest запрос на изменение бронирования
// Статус не передаётся: он вычисляется из сумм либо сохраняется, если бронирование закрыто
type UpdateBookingRequest struct {
	ClientName    string          `json:"clientName"`
	ClientPhone   string          `json:"clientPhone"`
	EventType     string          `json:"eventType"`
	StartAt       time.Time       `json:"startAt"`
	EndAt         time.Time       `json:"endAt"`
	Location      string          `json:"location"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	DepositAmount decimal.Decimal `json:"depositAmount"`
	Notes         *string         `json:"notes,omitempty"`
}

// ApplyTo переносит поля запроса в существующее бронирование
func (r *UpdateBookingRequest) ApplyTo(b *domain.Booking) {
	b.ClientName = strings.TrimSpace(r.ClientName)
	b.ClientPhone = strings.TrimSpace(r.ClientPhone)
	b.EventType = domain.EventType(strings.TrimSpace(r.EventType))
	if eventType, ok := domain.ParseEventType(r.EventType); ok {
		b.EventType = eventType
	}
	b.StartAt = r.StartAt
	b.EndAt = r.EndAt
	b.Location = strings.TrimSpace(r.Location)
	b.TotalAmount = domain.RoundMoney(r.TotalAmount)
	b.DepositAmount = domain.RoundMoney(r.DepositAmount)
	b.Notes = r.Notes
}

// Response модели

// BookingResponse ответ с данными бронирования
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
	PendingAmount decimal.Decimal `json:"pendingAmount"` // Вычисляется, не хранится
	Status        string          `json:"status"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Count    int               `json:"count"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
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

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}
	resp.Count = len(resp.Bookings)

	return resp
}

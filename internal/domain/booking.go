package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCancelled BookingStatus = "Cancelled"
	StatusCompleted BookingStatus = "Completed"
)

// EventType represents the kind of event that was booked
type EventType string

const (
	EventWedding   EventType = "wedding"
	EventCorporate EventType = "corporate"
	EventBirthday  EventType = "birthday"
	EventNightclub EventType = "nightclub"
	EventOther     EventType = "other"
)

// Booking represents a booked event in the ledger
type Booking struct {
	ID            string
	ClientName    string
	ClientPhone   string
	EventType     EventType
	StartAt       time.Time
	EndAt         time.Time
	Location      string
	TotalAmount   decimal.Decimal
	DepositAmount decimal.Decimal
	Status        BookingStatus
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PendingAmount returns the amount still owed on the booking
func (b *Booking) PendingAmount() decimal.Decimal {
	return b.TotalAmount.Sub(b.DepositAmount)
}

// IsActive returns true unless the booking has been cancelled
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// Overlaps reports whether the booking intersects the half-open interval [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartAt.Before(end) && b.EndAt.After(start)
}

// IsTerminal returns true for statuses that are set explicitly rather than derived
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// DeriveStatus computes the payment status of a booking from its amounts.
// A booking is Confirmed when nothing is owed on it (total is zero or the
// deposit covers the total), otherwise it is Pending.
func DeriveStatus(total, deposit decimal.Decimal) BookingStatus {
	pending := total.Sub(deposit)
	if total.IsZero() || !pending.IsPositive() {
		return StatusConfirmed
	}
	return StatusPending
}

// ResolveStatus returns the status a booking must be stored with.
// Terminal statuses are kept, everything else is derived from the amounts.
func ResolveStatus(b *Booking) BookingStatus {
	if b.Status.IsTerminal() {
		return b.Status
	}
	return DeriveStatus(b.TotalAmount, b.DepositAmount)
}

// ParseBookingStatus parses a status label case-insensitively
func ParseBookingStatus(s string) (BookingStatus, bool) {
	for _, status := range AllBookingStatuses {
		if strings.EqualFold(strings.TrimSpace(s), string(status)) {
			return status, true
		}
	}
	return "", false
}

// ParseEventType parses an event type case-insensitively
func ParseEventType(s string) (EventType, bool) {
	for _, t := range AllEventTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, true
		}
	}
	return "", false
}

// BookingFilter параметры выборки бронирований
type BookingFilter struct {
	ListQuery
	Status    *BookingStatus
	EventType *EventType
}

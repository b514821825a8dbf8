package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ErrValidation is returned when a ledger record breaks a field rule
var ErrValidation = errors.New("domain: validation failed")

func invalid(format string, v ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, v...))
}

// Validate checks the booking fields that every write path must respect
func (b *Booking) Validate() error {
	if err := requiredText("clientName", b.ClientName, MaxTextFieldLength); err != nil {
		return err
	}
	if err := requiredText("clientPhone", b.ClientPhone, MaxTextFieldLength); err != nil {
		return err
	}
	if err := requiredText("location", b.Location, MaxTextFieldLength); err != nil {
		return err
	}
	if _, ok := ParseEventType(string(b.EventType)); !ok {
		return invalid("unknown eventType %q", b.EventType)
	}
	if b.StartAt.IsZero() || b.EndAt.IsZero() {
		return invalid("startAt and endAt are required")
	}
	if !b.EndAt.After(b.StartAt) {
		return invalid("endAt must be after startAt")
	}
	if b.TotalAmount.IsNegative() {
		return invalid("totalAmount must not be negative")
	}
	if b.DepositAmount.IsNegative() {
		return invalid("depositAmount must not be negative")
	}
	if err := withinMaxAmount("totalAmount", b.TotalAmount); err != nil {
		return err
	}
	if b.DepositAmount.GreaterThan(b.TotalAmount) {
		return invalid("depositAmount must not exceed totalAmount")
	}
	return optionalNotes(b.Notes)
}

// Validate checks a payment before it is recorded
func (p *Payment) Validate() error {
	if strings.TrimSpace(p.BookingID) == "" {
		return invalid("bookingId is required")
	}
	if !p.Amount.IsPositive() {
		return invalid("amount must be positive")
	}
	if err := withinMaxAmount("amount", p.Amount); err != nil {
		return err
	}
	if _, ok := ParsePaymentMethod(string(p.Method)); !ok {
		return invalid("unknown paymentMethod %q", p.Method)
	}
	if _, ok := ParsePaymentStatus(string(p.Status)); !ok {
		return invalid("unknown status %q", p.Status)
	}
	if p.PaidOn.IsZero() {
		return invalid("paymentDate is required")
	}
	return optionalNotes(p.Notes)
}

// Validate checks an expense before it is stored
func (e *Expense) Validate() error {
	if err := requiredText("description", e.Description, MaxDescriptionLength); err != nil {
		return err
	}
	if _, ok := ParseExpenseCategory(string(e.Category)); !ok {
		return invalid("unknown category %q", e.Category)
	}
	if !IsExpenseMethod(e.PaymentMethod) {
		return invalid("unknown paymentMethod %q", e.PaymentMethod)
	}
	if !e.Amount.IsPositive() {
		return invalid("amount must be positive")
	}
	if err := withinMaxAmount("amount", e.Amount); err != nil {
		return err
	}
	if e.SpentOn.IsZero() {
		return invalid("expenseDate is required")
	}
	return optionalNotes(e.Notes)
}

// CountOverlapping counts active bookings that intersect [start, end)
func CountOverlapping(bookings []*Booking, start, end time.Time) int {
	count := 0
	for _, b := range bookings {
		if b.IsActive() && b.Overlaps(start, end) {
			count++
		}
	}
	return count
}

// RoundMoney rounds an amount to cents
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func requiredText(field, value string, max int) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return invalid("%s is required", field)
	}
	if utf8.RuneCountInString(value) > max {
		return invalid("%s must be at most %d characters", field, max)
	}
	return nil
}

// InAmountRange reports whether the amount fits the stored precision
func InAmountRange(d decimal.Decimal) bool {
	return !d.Abs().GreaterThan(MaxAmount)
}

func withinMaxAmount(field string, d decimal.Decimal) error {
	if !InAmountRange(d) {
		return invalid("%s must be at most %s", field, MaxAmount.StringFixed(2))
	}
	return nil
}

func optionalNotes(notes *string) error {
	if notes != nil && utf8.RuneCountInString(*notes) > MaxNotesLength {
		return invalid("notes must be at most %d characters", MaxNotesLength)
	}
	return nil
}

package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCreditCard   PaymentMethod = "creditCard"
	MethodBankTransfer PaymentMethod = "bankTransfer"
	MethodVenmo        PaymentMethod = "venmo"
	MethodPaypal       PaymentMethod = "paypal"
	MethodCheck        PaymentMethod = "check"
	MethodOther        PaymentMethod = "other"
)

// PaymentStatus represents the settlement state of a payment
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
)

// TransactionRefPrefix prefix of generated payment references
const TransactionRefPrefix = "TRX-"

// Payment represents money received against a booking.
// Payments are append-only: they can be recorded and deleted but never edited.
type Payment struct {
	ID             string
	BookingID      string
	Amount         decimal.Decimal
	Method         PaymentMethod
	Status         PaymentStatus
	PaidOn         time.Time
	TransactionRef string
	Notes          *string

	// Denormalized from the booking on read
	ClientName string

	CreatedAt time.Time
}

// IsCompleted returns true if the payment counts towards revenue
func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentCompleted
}

// ParsePaymentMethod parses a payment method case-insensitively
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	for _, m := range AllPaymentMethods {
		if strings.EqualFold(strings.TrimSpace(s), string(m)) {
			return m, true
		}
	}
	return "", false
}

// ParsePaymentStatus parses a payment status case-insensitively
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	for _, st := range AllPaymentStatuses {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return "", false
}

// PaymentFilter параметры выборки платежей
type PaymentFilter struct {
	ListQuery
	BookingID *string
	Status    *PaymentStatus
	Method    *PaymentMethod
}

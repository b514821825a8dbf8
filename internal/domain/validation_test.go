package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validBooking() *Booking {
	start := time.Date(2025, 6, 14, 18, 0, 0, 0, time.UTC)
	return &Booking{
		ClientName:    "Alice",
		ClientPhone:   "555-0100",
		EventType:     EventWedding,
		StartAt:       start,
		EndAt:         start.Add(5 * time.Hour),
		Location:      "Grand Hall",
		TotalAmount:   decimal.NewFromInt(1000),
		DepositAmount: decimal.NewFromInt(400),
	}
}

func TestBooking_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *Booking)
		ok     bool
	}{
		{"valid", func(b *Booking) {}, true},
		{"blank client", func(b *Booking) { b.ClientName = "  " }, false},
		{"long location", func(b *Booking) { b.Location = strings.Repeat("x", MaxTextFieldLength+1) }, false},
		{"unknown event type", func(b *Booking) { b.EventType = "funeral" }, false},
		{"end before start", func(b *Booking) { b.EndAt = b.StartAt.Add(-time.Hour) }, false},
		{"end equals start", func(b *Booking) { b.EndAt = b.StartAt }, false},
		{"negative total", func(b *Booking) { b.TotalAmount = decimal.NewFromInt(-1) }, false},
		{"deposit above total", func(b *Booking) { b.DepositAmount = decimal.NewFromInt(1001) }, false},
		{"deposit equals total", func(b *Booking) { b.DepositAmount = decimal.NewFromInt(1000) }, true},
		{"total at max", func(b *Booking) { b.TotalAmount = MaxAmount }, true},
		{"total above max", func(b *Booking) { b.TotalAmount = decimal.New(1, 15) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)
			err := b.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrValidation)
			}
		})
	}
}

func TestPayment_Validate(t *testing.T) {
	p := &Payment{
		BookingID: "b-1",
		Amount:    decimal.NewFromInt(100),
		Method:    MethodVenmo,
		Status:    PaymentCompleted,
		PaidOn:    time.Now(),
	}
	assert.NoError(t, p.Validate())

	p.Amount = decimal.Zero
	assert.ErrorIs(t, p.Validate(), ErrValidation)

	p.Amount = MaxAmount.Add(decimal.RequireFromString("0.01"))
	assert.ErrorIs(t, p.Validate(), ErrValidation)
}

func TestExpense_Validate(t *testing.T) {
	e := &Expense{
		Description:   "Cables",
		Category:      CategoryEquipment,
		Amount:        decimal.NewFromInt(40),
		SpentOn:       time.Now(),
		PaymentMethod: MethodCash,
	}
	assert.NoError(t, e.Validate())

	// venmo is accepted from clients but not used to pay expenses
	e.PaymentMethod = MethodVenmo
	assert.ErrorIs(t, e.Validate(), ErrValidation)

	e.PaymentMethod = MethodCash
	e.Amount = decimal.New(1, 15)
	assert.ErrorIs(t, e.Validate(), ErrValidation)
}

func TestCountOverlapping(t *testing.T) {
	day := time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)
	bookings := []*Booking{
		{StartAt: day.Add(18 * time.Hour), EndAt: day.Add(22 * time.Hour), Status: StatusPending},
		{StartAt: day.Add(20 * time.Hour), EndAt: day.Add(23 * time.Hour), Status: StatusCancelled},
		{StartAt: day.Add(21 * time.Hour), EndAt: day.Add(24 * time.Hour), Status: StatusConfirmed},
	}

	assert.Equal(t, 2, CountOverlapping(bookings, day.Add(21*time.Hour), day.Add(22*time.Hour)))
	assert.Equal(t, 0, CountOverlapping(bookings, day.Add(10*time.Hour), day.Add(18*time.Hour)))
}

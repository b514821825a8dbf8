package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		deposit int64
		want    BookingStatus
	}{
		{"fully paid", 1000, 1000, StatusConfirmed},
		{"partial deposit", 1000, 400, StatusPending},
		{"free event", 0, 0, StatusConfirmed},
		{"overpaid", 1000, 1200, StatusConfirmed},
		{"no deposit", 500, 0, StatusPending},
		{"negative total", -100, 0, StatusConfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(decimal.NewFromInt(tt.total), decimal.NewFromInt(tt.deposit))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveStatus(t *testing.T) {
	b := &Booking{
		TotalAmount:   decimal.NewFromInt(1000),
		DepositAmount: decimal.NewFromInt(400),
		Status:        StatusConfirmed,
	}
	// a stale derived status is recomputed
	assert.Equal(t, StatusPending, ResolveStatus(b))

	b.Status = StatusCancelled
	assert.Equal(t, StatusCancelled, ResolveStatus(b))

	b.Status = StatusCompleted
	assert.Equal(t, StatusCompleted, ResolveStatus(b))
}

func TestBooking_PendingAmount(t *testing.T) {
	b := &Booking{
		TotalAmount:   decimal.RequireFromString("1250.50"),
		DepositAmount: decimal.RequireFromString("250.25"),
	}
	assert.True(t, b.PendingAmount().Equal(decimal.RequireFromString("1000.25")))
}

func TestBooking_Overlaps(t *testing.T) {
	day := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	b := &Booking{StartAt: day.Add(18 * time.Hour), EndAt: day.Add(23 * time.Hour)}

	assert.True(t, b.Overlaps(day.Add(20*time.Hour), day.Add(26*time.Hour)))
	assert.True(t, b.Overlaps(day.Add(17*time.Hour), day.Add(19*time.Hour)))
	// touching intervals do not overlap
	assert.False(t, b.Overlaps(day.Add(23*time.Hour), day.Add(25*time.Hour)))
	assert.False(t, b.Overlaps(day.Add(10*time.Hour), day.Add(18*time.Hour)))
}

func TestParseBookingStatus(t *testing.T) {
	s, ok := ParseBookingStatus("cancelled")
	assert.True(t, ok)
	assert.Equal(t, StatusCancelled, s)

	_, ok = ParseBookingStatus("archived")
	assert.False(t, ok)
}

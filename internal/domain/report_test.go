package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMonthlyBuckets(t *testing.T) {
	d := func(m time.Month, day int) time.Time { return time.Date(2025, m, day, 12, 0, 0, 0, time.UTC) }

	entries := []MonthlyEntry{
		{Date: d(time.January, 5), Amount: decimal.NewFromInt(100)},
		{Date: d(time.January, 20), Amount: decimal.NewFromInt(200)},
		{Date: d(time.February, 1), Amount: decimal.NewFromInt(50)},
		// other year is ignored
		{Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(999)},
	}

	buckets := MonthlyBuckets(2025, entries)

	assert.True(t, buckets[0].Equal(decimal.NewFromInt(300)))
	assert.True(t, buckets[1].Equal(decimal.NewFromInt(50)))
	for m := 2; m < 12; m++ {
		assert.True(t, buckets[m].IsZero(), "bucket %d must be zero", m)
	}
}

func TestBuildFinancialReport(t *testing.T) {
	at := func(m time.Month) time.Time { return time.Date(2025, m, 10, 0, 0, 0, 0, time.UTC) }

	bookings := []*Booking{
		{ID: "b1", StartAt: at(time.March), EndAt: at(time.March).Add(4 * time.Hour),
			TotalAmount: decimal.NewFromInt(1000), DepositAmount: decimal.NewFromInt(400), Status: StatusPending},
		{ID: "b2", StartAt: at(time.April), EndAt: at(time.April).Add(4 * time.Hour),
			TotalAmount: decimal.NewFromInt(800), DepositAmount: decimal.NewFromInt(0), Status: StatusCancelled},
		{ID: "b3", StartAt: time.Date(2024, 12, 31, 20, 0, 0, 0, time.UTC), EndAt: time.Date(2025, 1, 1, 2, 0, 0, 0, time.UTC),
			TotalAmount: decimal.NewFromInt(500), Status: StatusPending},
	}
	payments := []*Payment{
		{BookingID: "b1", Amount: decimal.NewFromInt(400), Method: MethodCash, Status: PaymentCompleted, PaidOn: at(time.March)},
		{BookingID: "b1", Amount: decimal.NewFromInt(300), Method: MethodVenmo, Status: PaymentPending, PaidOn: at(time.April)},
		{BookingID: "b1", Amount: decimal.NewFromInt(100), Method: MethodCash, Status: PaymentCompleted, PaidOn: at(time.May)},
	}
	expenses := []*Expense{
		{Category: CategoryEquipment, Amount: decimal.NewFromInt(150), SpentOn: at(time.March)},
		{Category: CategoryTravel, Amount: decimal.NewFromInt(50), SpentOn: at(time.March)},
		{Category: CategoryTravel, Amount: decimal.NewFromInt(25), SpentOn: at(time.June)},
	}

	report := BuildFinancialReport(2025, bookings, payments, expenses)

	assert.Equal(t, 2025, report.Year)
	assert.True(t, report.TotalRevenue.Equal(decimal.NewFromInt(500)))
	assert.True(t, report.TotalExpenses.Equal(decimal.NewFromInt(225)))
	assert.True(t, report.NetProfit.Equal(decimal.NewFromInt(275)))
	assert.Equal(t, 2, report.BookingsCount)
	assert.True(t, report.PendingReceivables.Equal(decimal.NewFromInt(600)))

	assert.True(t, report.RevenueByMethod[MethodCash].Equal(decimal.NewFromInt(500)))
	_, hasVenmo := report.RevenueByMethod[MethodVenmo]
	assert.False(t, hasVenmo)
	assert.True(t, report.ExpensesByCategory[CategoryTravel].Equal(decimal.NewFromInt(75)))

	march := report.Monthly[time.March-1]
	assert.Equal(t, time.March, march.Month)
	assert.True(t, march.Revenue.Equal(decimal.NewFromInt(400)))
	assert.True(t, march.Expenses.Equal(decimal.NewFromInt(200)))
	assert.True(t, march.Profit.Equal(decimal.NewFromInt(200)))
	assert.True(t, report.Monthly[time.June-1].Profit.Equal(decimal.NewFromInt(-25)))
}

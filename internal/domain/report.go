package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyEntry a dated amount fed into monthly aggregation
type MonthlyEntry struct {
	Date   time.Time
	Amount decimal.Decimal
}

// MonthlySummary revenue and expenses of one calendar month
type MonthlySummary struct {
	Month    time.Month
	Revenue  decimal.Decimal
	Expenses decimal.Decimal
	Profit   decimal.Decimal
}

// FinancialReport yearly totals of the ledger
type FinancialReport struct {
	Year               int
	TotalRevenue       decimal.Decimal
	TotalExpenses      decimal.Decimal
	NetProfit          decimal.Decimal
	PendingReceivables decimal.Decimal
	BookingsCount      int
	ExpensesByCategory map[ExpenseCategory]decimal.Decimal
	RevenueByMethod    map[PaymentMethod]decimal.Decimal
	Monthly            [12]MonthlySummary
}

// MonthlyBuckets sums entries of the given year by month.
// bucket[0] is January; entries outside the year are ignored.
func MonthlyBuckets(year int, entries []MonthlyEntry) [12]decimal.Decimal {
	var buckets [12]decimal.Decimal
	for _, e := range entries {
		if e.Date.Year() != year {
			continue
		}
		m := e.Date.Month() - 1
		buckets[m] = buckets[m].Add(e.Amount)
	}
	return buckets
}

// BuildFinancialReport aggregates the ledger for one year in a single pass per collection.
// Only completed payments count as revenue.
func BuildFinancialReport(year int, bookings []*Booking, payments []*Payment, expenses []*Expense) *FinancialReport {
	report := &FinancialReport{
		Year:               year,
		ExpensesByCategory: make(map[ExpenseCategory]decimal.Decimal),
		RevenueByMethod:    make(map[PaymentMethod]decimal.Decimal),
	}

	revenueEntries := make([]MonthlyEntry, 0, len(payments))
	for _, p := range payments {
		if !p.IsCompleted() || p.PaidOn.Year() != year {
			continue
		}
		report.TotalRevenue = report.TotalRevenue.Add(p.Amount)
		report.RevenueByMethod[p.Method] = report.RevenueByMethod[p.Method].Add(p.Amount)
		revenueEntries = append(revenueEntries, MonthlyEntry{Date: p.PaidOn, Amount: p.Amount})
	}

	expenseEntries := make([]MonthlyEntry, 0, len(expenses))
	for _, e := range expenses {
		if e.SpentOn.Year() != year {
			continue
		}
		report.TotalExpenses = report.TotalExpenses.Add(e.Amount)
		report.ExpensesByCategory[e.Category] = report.ExpensesByCategory[e.Category].Add(e.Amount)
		expenseEntries = append(expenseEntries, MonthlyEntry{Date: e.SpentOn, Amount: e.Amount})
	}

	for _, b := range bookings {
		if b.StartAt.Year() != year {
			continue
		}
		report.BookingsCount++
		if pending := b.PendingAmount(); b.IsActive() && pending.IsPositive() {
			report.PendingReceivables = report.PendingReceivables.Add(pending)
		}
	}

	report.NetProfit = report.TotalRevenue.Sub(report.TotalExpenses)

	revenue := MonthlyBuckets(year, revenueEntries)
	spent := MonthlyBuckets(year, expenseEntries)
	for i := range report.Monthly {
		report.Monthly[i] = MonthlySummary{
			Month:    time.Month(i + 1),
			Revenue:  revenue[i],
			Expenses: spent[i],
			Profit:   revenue[i].Sub(spent[i]),
		}
	}

	return report
}

package financial_report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
)

// Минимальный и максимальный год отчёта
const (
	MinYear = 1970
	MaxYear = 9999
)

// MonthRow строка помесячной разбивки
type MonthRow struct {
	Month    int             `json:"month"` // 1..12
	Name     string          `json:"name"`  // "January"
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

// AmountRow сумма по категории или способу оплаты
type AmountRow struct {
	Key    string          `json:"key"`
	Amount decimal.Decimal `json:"amount"`
}

// Response финансовый отчёт за год
type Response struct {
	Year               int             `json:"year"`
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses"`
	NetProfit          decimal.Decimal `json:"netProfit"`
	PendingReceivables decimal.Decimal `json:"pendingReceivables"`
	BookingsCount      int             `json:"bookingsCount"`
	ExpensesByCategory []AmountRow     `json:"expensesByCategory"` // По убыванию суммы
	RevenueByMethod    []AmountRow     `json:"revenueByMethod"`    // По убыванию суммы
	Monthly            []MonthRow      `json:"monthly"`            // Всегда 12 строк
}

func toResponse(r *domain.FinancialReport) *Response {
	resp := &Response{
		Year:               r.Year,
		TotalRevenue:       r.TotalRevenue,
		TotalExpenses:      r.TotalExpenses,
		NetProfit:          r.NetProfit,
		PendingReceivables: r.PendingReceivables,
		BookingsCount:      r.BookingsCount,
		ExpensesByCategory: make([]AmountRow, 0, len(r.ExpensesByCategory)),
		RevenueByMethod:    make([]AmountRow, 0, len(r.RevenueByMethod)),
		Monthly:            make([]MonthRow, 0, len(r.Monthly)),
	}

	for category, amount := range r.ExpensesByCategory {
		resp.ExpensesByCategory = append(resp.ExpensesByCategory, AmountRow{Key: string(category), Amount: amount})
	}
	for method, amount := range r.RevenueByMethod {
		resp.RevenueByMethod = append(resp.RevenueByMethod, AmountRow{Key: string(method), Amount: amount})
	}
	sortRows(resp.ExpensesByCategory)
	sortRows(resp.RevenueByMethod)

	for _, m := range r.Monthly {
		resp.Monthly = append(resp.Monthly, MonthRow{
			Month:    int(m.Month),
			Name:     m.Month.String(),
			Revenue:  m.Revenue,
			Expenses: m.Expenses,
			Profit:   m.Profit,
		})
	}

	return resp
}

// sortRows сортирует по убыванию суммы, при равенстве - по ключу
func sortRows(rows []AmountRow) {
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Amount.Cmp(rows[j].Amount); c != 0 {
			return c > 0
		}
		return rows[i].Key < rows[j].Key
	})
}

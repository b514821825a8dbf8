package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
)

// ExpenseRequest запрос на создание или изменение расхода
type ExpenseRequest struct {
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	ExpenseDate   time.Time       `json:"expenseDate"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         *string         `json:"notes,omitempty"`
}

// ApplyTo переносит поля запроса в расход
func (r *ExpenseRequest) ApplyTo(e *domain.Expense) {
	e.Description = strings.TrimSpace(r.Description)

	e.Category = domain.ExpenseCategory(r.Category)
	if category, ok := domain.ParseExpenseCategory(r.Category); ok {
		e.Category = category
	}

	e.PaymentMethod = domain.PaymentMethod(r.PaymentMethod)
	if method, ok := domain.ParsePaymentMethod(r.PaymentMethod); ok {
		e.PaymentMethod = method
	}

	e.Amount = domain.RoundMoney(r.Amount)
	e.SpentOn = r.ExpenseDate
	e.Notes = r.Notes
}

// ListExpensesRequest запрос на получение списка расходов
type ListExpensesRequest struct {
	Search    string
	Category  *string
	Method    *string
	Timeframe string
	Sort      string
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListExpensesRequest) ToDomainFilter(now time.Time) (domain.ExpenseFilter, error) {
	query, err := domain.NewListQuery(r.Search, r.Timeframe, r.Sort, now)
	if err != nil {
		return domain.ExpenseFilter{}, err
	}

	filter := domain.ExpenseFilter{ListQuery: query}

	if r.Category != nil {
		category, ok := domain.ParseExpenseCategory(*r.Category)
		if !ok {
			return filter, fmt.Errorf("unknown category %q", *r.Category)
		}
		filter.Category = &category
	}

	if r.Method != nil {
		method, ok := domain.ParsePaymentMethod(*r.Method)
		if !ok || !domain.IsExpenseMethod(method) {
			return filter, fmt.Errorf("unknown method %q", *r.Method)
		}
		filter.PaymentMethod = &method
	}

	return filter, nil
}

// ExpenseResponse ответ с данными расхода
type ExpenseResponse struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	ExpenseDate   string          `json:"expenseDate"` // "2025-10-15"
	PaymentMethod string          `json:"paymentMethod"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ExpenseListResponse ответ со списком расходов, общей суммой и разбивкой по категориям
type ExpenseListResponse struct {
	Expenses   []ExpenseResponse          `json:"expenses"`
	Count      int                        `json:"count"`
	Total      decimal.Decimal            `json:"total"`
	ByCategory map[string]decimal.Decimal `json:"byCategory"`
}

// FromDomainExpense конвертирует domain модель в DTO
func FromDomainExpense(e *domain.Expense) *ExpenseResponse {
	if e == nil {
		return nil
	}

	return &ExpenseResponse{
		ID:            e.ID,
		Description:   e.Description,
		Category:      string(e.Category),
		Amount:        e.Amount,
		ExpenseDate:   e.SpentOn.Format(domain.DateFormat),
		PaymentMethod: string(e.PaymentMethod),
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// FromDomainExpenseList конвертирует список domain моделей в DTO и считает итоги
func FromDomainExpenseList(expenses []*domain.Expense) *ExpenseListResponse {
	resp := &ExpenseListResponse{
		Expenses:   make([]ExpenseResponse, 0, len(expenses)),
		Total:      decimal.Zero,
		ByCategory: make(map[string]decimal.Decimal),
	}

	for _, expense := range expenses {
		if expense == nil {
			continue
		}
		resp.Expenses = append(resp.Expenses, *FromDomainExpense(expense))
		resp.Total = resp.Total.Add(expense.Amount)

		category := string(expense.Category)
		resp.ByCategory[category] = resp.ByCategory[category].Add(expense.Amount)
	}
	resp.Count = len(resp.Expenses)

	return resp
}

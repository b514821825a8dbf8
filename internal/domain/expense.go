package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory groups business expenses for reporting
type ExpenseCategory string

const (
	CategoryEquipment   ExpenseCategory = "equipment"
	CategoryTravel      ExpenseCategory = "travel"
	CategorySoftware    ExpenseCategory = "software"
	CategoryMarketing   ExpenseCategory = "marketing"
	CategoryOffice      ExpenseCategory = "office"
	CategoryVenue       ExpenseCategory = "venue"
	CategoryContractors ExpenseCategory = "contractors"
	CategoryInsurance   ExpenseCategory = "insurance"
	CategoryOther       ExpenseCategory = "other"
)

// Expense represents money spent by the business
type Expense struct {
	ID            string
	Description   string
	Category      ExpenseCategory
	Amount        decimal.Decimal
	SpentOn       time.Time
	PaymentMethod PaymentMethod
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ParseExpenseCategory parses an expense category case-insensitively
func ParseExpenseCategory(s string) (ExpenseCategory, bool) {
	for _, c := range AllExpenseCategories {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, true
		}
	}
	return "", false
}

// IsExpenseMethod returns true for methods that can be used to pay an expense
func IsExpenseMethod(m PaymentMethod) bool {
	for _, em := range ExpensePaymentMethods {
		if em == m {
			return true
		}
	}
	return false
}

// ExpenseFilter параметры выборки расходов
type ExpenseFilter struct {
	ListQuery
	Category      *ExpenseCategory
	PaymentMethod *PaymentMethod
}

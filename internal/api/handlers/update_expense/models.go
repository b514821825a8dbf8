package update_expense

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
	"github.com/m04kA/SMC-EventLedger/internal/service/expenses/models"
)

// ExpenseRequest HTTP request model
type ExpenseRequest struct {
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	ExpenseDate   string          `json:"expenseDate"` // "2025-10-15"
	PaymentMethod string          `json:"paymentMethod"`
	Notes         *string         `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ExpenseRequest) ToServiceRequest() (*models.ExpenseRequest, error) {
	expenseDate, err := handlers.ParseDate(r.ExpenseDate)
	if err != nil {
		return nil, err
	}

	return &models.ExpenseRequest{
		Description:   r.Description,
		Category:      r.Category,
		Amount:        r.Amount,
		ExpenseDate:   expenseDate,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
	}, nil
}

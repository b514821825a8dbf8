package ledger_transfer

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Ledger выгрузка журнала в формате браузерного хранилища старого приложения
type Ledger struct {
	Bookings []LegacyBooking `json:"bookings"`
	Payments []LegacyPayment `json:"payments"`
	Expenses []LegacyExpense `json:"expenses"`
}

// LegacyBooking бронирование в старом формате
type LegacyBooking struct {
	ID            LegacyID     `json:"_id"`
	ClientName    string       `json:"clientName"`
	ClientPhone   string       `json:"clientPhone"`
	EventType     string       `json:"eventType"`
	StartDateTime string       `json:"startDateTime"`
	EndDateTime   string       `json:"endDateTime"`
	Location      string       `json:"location"`
	TotalAmount   LegacyAmount `json:"totalAmount"`
	DepositAmount LegacyAmount `json:"depositAmount"`
	PendingAmount LegacyAmount `json:"pendingAmount"` // Игнорируется при импорте, пересчитывается
	Status        string       `json:"status"`
	Notes         *string      `json:"notes,omitempty"`
}

// LegacyPayment платеж в старом формате
type LegacyPayment struct {
	ID            LegacyID     `json:"_id"`
	BookingID     LegacyID     `json:"bookingId"`
	Amount        LegacyAmount `json:"amount"`
	PaymentMethod string       `json:"paymentMethod"`
	Status        string       `json:"status"`
	TransactionID string       `json:"transactionId"`
	PaymentDate   string       `json:"paymentDate"`
	Notes         *string      `json:"notes,omitempty"`
}

// LegacyExpense расход в старом формате
type LegacyExpense struct {
	ID            LegacyID     `json:"_id"`
	Description   string       `json:"description"`
	Category      string       `json:"category"`
	Amount        LegacyAmount `json:"amount"`
	ExpenseDate   string       `json:"expenseDate"`
	PaymentMethod string       `json:"paymentMethod"`
	Notes         *string      `json:"notes,omitempty"`
}

// LegacyAmount денежная сумма, которая в старых данных бывает числом или строкой
// Пустые и некорректные значения превращаются в ноль
type LegacyAmount struct {
	decimal.Decimal
}

// UnmarshalJSON разбирает число, числовую строку или null
func (a *LegacyAmount) UnmarshalJSON(data []byte) error {
	a.Decimal = decimal.Zero

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = s
	}

	if d, err := decimal.NewFromString(strings.TrimSpace(raw)); err == nil {
		a.Decimal = d
	}
	return nil
}

// MarshalJSON пишет сумму числом
func (a LegacyAmount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// LegacyID идентификатор записи, строка или число (Date.now())
type LegacyID string

// UnmarshalJSON принимает строку, число или null
func (id *LegacyID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = LegacyID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*id = LegacyID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = LegacyID(n.String())
	return nil
}

// SkippedRecord запись, которая не была импортирована
type SkippedRecord struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// CollectionResult итог импорта одной коллекции
type CollectionResult struct {
	Imported int             `json:"imported"`
	Skipped  []SkippedRecord `json:"skipped"`
}

// ImportResult итог импорта выгрузки
type ImportResult struct {
	Bookings CollectionResult `json:"bookings"`
	Payments CollectionResult `json:"payments"`
	Expenses CollectionResult `json:"expenses"`
}

func (c *CollectionResult) skip(id LegacyID, reason string) {
	c.Skipped = append(c.Skipped, SkippedRecord{ID: string(id), Reason: reason})
}

func newImportResult() *ImportResult {
	return &ImportResult{
		Bookings: CollectionResult{Skipped: []SkippedRecord{}},
		Payments: CollectionResult{Skipped: []SkippedRecord{}},
		Expenses: CollectionResult{Skipped: []SkippedRecord{}},
	}
}

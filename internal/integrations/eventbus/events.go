package eventbus

import (
	"encoding/json"
	"strings"
	"time"
)

// Типы событий журнала
const (
	BookingCreated       = "booking.created"
	BookingUpdated       = "booking.updated"
	BookingStatusChanged = "booking.status_changed"
	BookingDeleted       = "booking.deleted"
	PaymentRecorded      = "payment.recorded"
	PaymentDeleted       = "payment.deleted"
	ExpenseCreated       = "expense.created"
	ExpenseUpdated       = "expense.updated"
	ExpenseDeleted       = "expense.deleted"
	LedgerImported       = "ledger.imported"
)

// Envelope конверт события, публикуемого в Kafka
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	Payload    json.RawMessage `json:"payload"`
}

// splitType разбивает тип события на сущность и операцию: "booking.created" -> booking, created
func splitType(eventType string) (entity, operation string) {
	entity, operation, found := strings.Cut(eventType, ".")
	if !found {
		return eventType, "unknown"
	}
	return entity, operation
}

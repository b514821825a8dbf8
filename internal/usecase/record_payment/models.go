package record_payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на запись платежа
type Request struct {
	BookingID     string
	Amount        *decimal.Decimal // nil - остаток к оплате по бронированию
	PaymentMethod string
	Status        string    // пусто - completed
	PaymentDate   time.Time // нулевое значение - сегодня
	Notes         *string
}

// Response модель ответа с записанным платежом
type Response struct {
	ID             string
	BookingID      string
	ClientName     string
	Amount         decimal.Decimal
	PaymentMethod  string
	Status         string
	PaymentDate    time.Time
	TransactionRef string
	Notes          *string
	CreatedAt      time.Time
}

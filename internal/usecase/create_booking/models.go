package create_booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientName    string          // Имя клиента
	ClientPhone   string          // Телефон клиента
	EventType     string          // wedding, corporate, birthday, nightclub, other
	StartAt       time.Time       // Начало мероприятия
	EndAt         time.Time       // Окончание мероприятия
	Location      string          // Место проведения
	TotalAmount   decimal.Decimal // Полная стоимость
	DepositAmount decimal.Decimal // Внесённый депозит
	Notes         *string         // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            string
	ClientName    string
	ClientPhone   string
	EventType     string
	StartAt       time.Time
	EndAt         time.Time
	Location      string
	TotalAmount   decimal.Decimal
	DepositAmount decimal.Decimal
	PendingAmount decimal.Decimal // Остаток к оплате
	Status        string          // Вычисленный статус
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

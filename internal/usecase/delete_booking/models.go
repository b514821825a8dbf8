package delete_booking

// Request модель запроса на удаление бронирования
type Request struct {
	BookingID string
	Cascade   bool // Удалить вместе с платежами
}

// Response результат удаления
type Response struct {
	BookingID       string `json:"bookingId"`
	DeletedPayments int64  `json:"deletedPayments"`
}

package record_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование для платежа не найдено
	ErrBookingNotFound = errors.New("record_payment: booking not found")

	// ErrNothingPending возвращается, когда сумма не указана, а по бронированию ничего не причитается
	ErrNothingPending = errors.New("record_payment: booking has no pending amount")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("record_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("record_payment: internal error")
)

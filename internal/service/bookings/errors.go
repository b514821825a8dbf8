package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrStatusDerived возвращается при попытке вручную выставить вычисляемый статус (Pending, Confirmed)
	ErrStatusDerived = errors.New("bookings: status is derived from amounts")

	// ErrScheduleConflict возвращается, когда новое время пересекается с уже занятыми бронированиями
	ErrScheduleConflict = errors.New("bookings: schedule conflict")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)

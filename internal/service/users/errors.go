package users

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("users: invalid input data")

	// ErrEmailTaken возвращается, когда email уже зарегистрирован
	ErrEmailTaken = errors.New("users: email already registered")

	// ErrInvalidCredentials возвращается при неверной паре email/пароль
	// Одинакова для неизвестного email и неверного пароля
	ErrInvalidCredentials = errors.New("users: invalid email or password")

	// ErrUnauthorized возвращается для отсутствующей или истекшей сессии
	ErrUnauthorized = errors.New("users: session is missing or expired")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("users: user not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("users: internal error")
)

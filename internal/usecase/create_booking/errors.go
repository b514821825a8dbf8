package create_booking

import "errors"

var (
	// ErrScheduleConflict возвращается, когда на это время уже набран лимит одновременных мероприятий
	ErrScheduleConflict = errors.New("create_booking: schedule conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

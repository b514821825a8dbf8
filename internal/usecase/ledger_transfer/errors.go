package ledger_transfer

import "errors"

var (
	// ErrInvalidInput возвращается, если выгрузка не является JSON объектом нужного вида
	ErrInvalidInput = errors.New("ledger_transfer: invalid ledger dump")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("ledger_transfer: internal error")
)

// Причины пропуска записей при импорте
const (
	reasonBadDate        = "unparsable date"
	reasonExists         = "id already exists"
	reasonUnknownBooking = "unknown booking"
	reasonAmount         = "amount out of range"
	reasonExpenseMethod  = "unsupported payment method"
	reasonMissingBooking = "bookingId is required"
	reasonBadRange       = "end must be after start"
)

package domain

import "github.com/shopspring/decimal"

// Default configuration values
const (
	DefaultMaxConcurrentEvents = 1
	DefaultMinPasswordLength   = 8
)

// Business validation constants
const (
	MaxTextFieldLength   = 200
	MaxNotesLength       = 2000
	MaxDescriptionLength = 500
	MaxSearchLength      = 100
)

// MaxAmount largest amount a NUMERIC(14,2) column holds
var MaxAmount = decimal.RequireFromString("999999999999.99")

// Time format constants
const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02T15:04"
)

// AllBookingStatuses список всех статусов бронирования
var AllBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}

// AllEventTypes список типов мероприятий
var AllEventTypes = []EventType{
	EventWedding,
	EventCorporate,
	EventBirthday,
	EventNightclub,
	EventOther,
}

// AllPaymentMethods способы оплаты, принимаемые от клиентов
var AllPaymentMethods = []PaymentMethod{
	MethodCash,
	MethodCreditCard,
	MethodBankTransfer,
	MethodVenmo,
	MethodPaypal,
	MethodCheck,
	MethodOther,
}

// ExpensePaymentMethods способы оплаты расходов
var ExpensePaymentMethods = []PaymentMethod{
	MethodCash,
	MethodCreditCard,
	MethodBankTransfer,
	MethodPaypal,
}

// AllPaymentStatuses список статусов платежа
var AllPaymentStatuses = []PaymentStatus{
	PaymentCompleted,
	PaymentPending,
	PaymentFailed,
}

// AllExpenseCategories список категорий расходов
var AllExpenseCategories = []ExpenseCategory{
	CategoryEquipment,
	CategoryTravel,
	CategorySoftware,
	CategoryMarketing,
	CategoryOffice,
	CategoryVenue,
	CategoryContractors,
	CategoryInsurance,
	CategoryOther,
}

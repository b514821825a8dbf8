package ledger_transfer

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
	"github.com/m04kA/SMC-EventLedger/pkg/ptr"
)

var errBadDate = errors.New("unparsable date")

// Форматы дат, встречающиеся в старых выгрузках
var legacyLayouts = []string{
	time.RFC3339Nano,
	secondsLayout,
	domain.DateTimeFormat,
	domain.DateFormat,
}

const secondsLayout = "2006-01-02T15:04:05"

// formatLegacyTime пишет время с точностью, достаточной для повторного импорта без потерь
func formatLegacyTime(t time.Time) string {
	t = t.UTC()
	switch {
	case t.Nanosecond() != 0:
		return t.Format(time.RFC3339Nano)
	case t.Second() != 0:
		return t.Format(secondsLayout)
	default:
		return t.Format(domain.DateTimeFormat)
	}
}

func parseLegacyTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errBadDate
	}
	for _, layout := range legacyLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errBadDate
}

func parseLegacyDay(s string) (time.Time, error) {
	t, err := parseLegacyTime(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func recordID(id LegacyID) string {
	if id != "" {
		return string(id)
	}
	return uuid.Must(uuid.NewV7()).String()
}

func eventTypeOrOther(s string) domain.EventType {
	if t, ok := domain.ParseEventType(s); ok {
		return t
	}
	return domain.EventOther
}

func methodOrOther(s string) domain.PaymentMethod {
	if m, ok := domain.ParsePaymentMethod(s); ok {
		return m
	}
	return domain.MethodOther
}

func categoryOrOther(s string) domain.ExpenseCategory {
	if c, ok := domain.ParseExpenseCategory(s); ok {
		return c
	}
	return domain.CategoryOther
}

// Пустой или неизвестный статус платежа считается проведенным
func paymentStatusOrCompleted(s string) domain.PaymentStatus {
	if st, ok := domain.ParsePaymentStatus(s); ok {
		return st
	}
	return domain.PaymentCompleted
}

func notes(n *string) *string {
	if strings.TrimSpace(ptr.Value(n)) == "" {
		return nil
	}
	return n
}

func amount(a LegacyAmount) decimal.Decimal {
	return domain.RoundMoney(a.Decimal)
}

func toDomainBooking(lb LegacyBooking) (*domain.Booking, string) {
	start, err := parseLegacyTime(lb.StartDateTime)
	if err != nil {
		return nil, reasonBadDate
	}
	end, err := parseLegacyTime(lb.EndDateTime)
	if err != nil {
		return nil, reasonBadDate
	}
	if !end.After(start) {
		return nil, reasonBadRange
	}
	total, deposit := amount(lb.TotalAmount), amount(lb.DepositAmount)
	if !domain.InAmountRange(total) || !domain.InAmountRange(deposit) {
		return nil, reasonAmount
	}

	b := &domain.Booking{
		ID:            recordID(lb.ID),
		ClientName:    strings.TrimSpace(lb.ClientName),
		ClientPhone:   strings.TrimSpace(lb.ClientPhone),
		EventType:     eventTypeOrOther(lb.EventType),
		StartAt:       start,
		EndAt:         end,
		Location:      strings.TrimSpace(lb.Location),
		TotalAmount:   total,
		DepositAmount: deposit,
		Notes:         notes(lb.Notes),
	}
	if status, ok := domain.ParseBookingStatus(lb.Status); ok {
		b.Status = status
	}
	b.Status = domain.ResolveStatus(b)

	return b, ""
}

func toDomainPayment(lp LegacyPayment) (*domain.Payment, string) {
	if lp.BookingID == "" {
		return nil, reasonMissingBooking
	}
	paidOn, err := parseLegacyDay(lp.PaymentDate)
	if err != nil {
		return nil, reasonBadDate
	}
	value := amount(lp.Amount)
	if !value.IsPositive() || !domain.InAmountRange(value) {
		return nil, reasonAmount
	}

	p := &domain.Payment{
		ID:             recordID(lp.ID),
		BookingID:      string(lp.BookingID),
		Amount:         value,
		Method:         methodOrOther(lp.PaymentMethod),
		Status:         paymentStatusOrCompleted(lp.Status),
		PaidOn:         paidOn,
		TransactionRef: strings.TrimSpace(lp.TransactionID),
		Notes:          notes(lp.Notes),
	}
	if p.TransactionRef == "" {
		p.TransactionRef = domain.TransactionRefPrefix + p.ID
	}

	return p, ""
}

func toDomainExpense(le LegacyExpense) (*domain.Expense, string) {
	spentOn, err := parseLegacyDay(le.ExpenseDate)
	if err != nil {
		return nil, reasonBadDate
	}
	value := amount(le.Amount)
	if !value.IsPositive() || !domain.InAmountRange(value) {
		return nil, reasonAmount
	}

	method := domain.MethodCash
	if strings.TrimSpace(le.PaymentMethod) != "" {
		m, ok := domain.ParsePaymentMethod(le.PaymentMethod)
		if !ok || !domain.IsExpenseMethod(m) {
			return nil, reasonExpenseMethod
		}
		method = m
	}

	return &domain.Expense{
		ID:            recordID(le.ID),
		Description:   strings.TrimSpace(le.Description),
		Category:      categoryOrOther(le.Category),
		Amount:        value,
		SpentOn:       spentOn,
		PaymentMethod: method,
		Notes:         notes(le.Notes),
	}, ""
}

func fromDomainBooking(b *domain.Booking) LegacyBooking {
	return LegacyBooking{
		ID:            LegacyID(b.ID),
		ClientName:    b.ClientName,
		ClientPhone:   b.ClientPhone,
		EventType:     string(b.EventType),
		StartDateTime: formatLegacyTime(b.StartAt),
		EndDateTime:   formatLegacyTime(b.EndAt),
		Location:      b.Location,
		TotalAmount:   LegacyAmount{b.TotalAmount},
		DepositAmount: LegacyAmount{b.DepositAmount},
		PendingAmount: LegacyAmount{b.PendingAmount()},
		Status:        string(b.Status),
		Notes:         b.Notes,
	}
}

func fromDomainPayment(p *domain.Payment) LegacyPayment {
	return LegacyPayment{
		ID:            LegacyID(p.ID),
		BookingID:     LegacyID(p.BookingID),
		Amount:        LegacyAmount{p.Amount},
		PaymentMethod: string(p.Method),
		Status:        string(p.Status),
		TransactionID: p.TransactionRef,
		PaymentDate:   p.PaidOn.UTC().Format(domain.DateFormat),
		Notes:         p.Notes,
	}
}

func fromDomainExpense(e *domain.Expense) LegacyExpense {
	return LegacyExpense{
		ID:            LegacyID(e.ID),
		Description:   e.Description,
		Category:      string(e.Category),
		Amount:        LegacyAmount{e.Amount},
		ExpenseDate:   e.SpentOn.UTC().Format(domain.DateFormat),
		PaymentMethod: string(e.PaymentMethod),
		Notes:         e.Notes,
	}
}

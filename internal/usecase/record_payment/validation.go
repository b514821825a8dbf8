package record_payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
)

// validateRequest проверяет поля, не зависящие от бронирования
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BookingID) == "" {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	if req.Amount != nil && !req.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	if _, ok := domain.ParsePaymentMethod(req.PaymentMethod); !ok {
		return fmt.Errorf("%w: unknown paymentMethod %q", ErrInvalidInput, req.PaymentMethod)
	}

	if req.Status != "" {
		if _, ok := domain.ParsePaymentStatus(req.Status); !ok {
			return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
		}
	}

	return nil
}

// paymentDay обрезает дату платежа до дня, по умолчанию - сегодня
func paymentDay(date, now time.Time) time.Time {
	if date.IsZero() {
		date = now
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// newTransactionRef генерирует ссылку на транзакцию вида TRX-<unix ms>-<suffix>
func newTransactionRef(now time.Time) string {
	return fmt.Sprintf("%s%d-%s", domain.TransactionRefPrefix, now.UnixMilli(), strings.ToUpper(uuid.NewString()[:8]))
}

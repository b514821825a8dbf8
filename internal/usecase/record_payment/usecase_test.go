package record_payment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
	bookingRepo "github.com/m04kA/SMC-EventLedger/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-EventLedger/internal/infra/storage/payment"
	"github.com/m04kA/SMC-EventLedger/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-EventLedger/internal/integrations/eventbus"
	"github.com/m04kA/SMC-EventLedger/pkg/ptr"
	"github.com/m04kA/SMC-EventLedger/pkg/sqlbuilder"
	"github.com/m04kA/SMC-EventLedger/pkg/txmanager"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var today = time.Date(2025, 5, 20, 15, 30, 0, 0, time.UTC)

type fixture struct {
	uc       *UseCase
	bookings *bookingRepo.Repository
	payments *paymentRepo.Repository
}

func newFixture(t *testing.T) fixture {
	db := storagetest.NewSQLite(t)
	f := fixture{
		bookings: bookingRepo.NewRepository(db, sqlbuilder.DialectSQLite),
		payments: paymentRepo.NewRepository(db, sqlbuilder.DialectSQLite),
	}
	f.uc = NewUseCase(f.bookings, f.payments, txmanager.NewTransactionManager(db, false), eventbus.NoopPublisher{}, nopLogger{})
	f.uc.timeProvider = fixedTime{now: today}
	return f
}

func (f fixture) booking(t *testing.T, total, deposit int64) *domain.Booking {
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	b := &domain.Booking{
		ClientName:    "Alice",
		ClientPhone:   "555-0100",
		EventType:     domain.EventWedding,
		StartAt:       start,
		EndAt:         start.Add(5 * time.Hour),
		Location:      "Grand Hall",
		TotalAmount:   decimal.NewFromInt(total),
		DepositAmount: decimal.NewFromInt(deposit),
	}
	b.Status = domain.ResolveStatus(b)

	created, err := f.bookings.Create(context.Background(), b)
	require.NoError(t, err)
	return created
}

func TestExecute_DefaultsToPendingAmount(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, 1000, 400)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: b.ID, PaymentMethod: "venmo"})
	require.NoError(t, err)

	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "Alice", resp.ClientName)
	assert.Equal(t, time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), resp.PaymentDate)
	assert.True(t, strings.HasPrefix(resp.TransactionRef, domain.TransactionRefPrefix))

	stored, err := f.payments.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.TransactionRef, stored.TransactionRef)
}

func TestExecute_ExplicitAmountAndStatus(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, 1000, 400)

	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID:     b.ID,
		Amount:        ptr.Ptr(decimal.RequireFromString("250.555")),
		PaymentMethod: "bankTransfer",
		Status:        "Pending",
		PaymentDate:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Notes:         ptr.Ptr("second instalment"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Amount.Equal(decimal.RequireFromString("250.56")))
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "bankTransfer", resp.PaymentMethod)
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, 1000, 400)
	paid := f.booking(t, 500, 500)

	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{"unknown booking", &Request{BookingID: "missing", PaymentMethod: "cash"}, ErrBookingNotFound},
		{"zero amount", &Request{BookingID: b.ID, Amount: ptr.Ptr(decimal.Zero), PaymentMethod: "cash"}, ErrInvalidInput},
		{"negative amount", &Request{BookingID: b.ID, Amount: ptr.Ptr(decimal.NewFromInt(-5)), PaymentMethod: "cash"}, ErrInvalidInput},
		{"unknown method", &Request{BookingID: b.ID, PaymentMethod: "bitcoin"}, ErrInvalidInput},
		{"unknown status", &Request{BookingID: b.ID, PaymentMethod: "cash", Status: "refunded"}, ErrInvalidInput},
		{"nothing pending", &Request{BookingID: paid.ID, PaymentMethod: "cash"}, ErrNothingPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	count, err := f.payments.CountByBooking(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

package delete_booking

import (
	"context"
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
	"github.com/m04kA/SMC-EventLedger/pkg/sqlbuilder"
	"github.com/m04kA/SMC-EventLedger/pkg/txmanager"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

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
	return f
}

func (f fixture) seed(t *testing.T, payments int) *domain.Booking {
	ctx := context.Background()
	start := time.Date(2025, 10, 4, 19, 0, 0, 0, time.UTC)

	b, err := f.bookings.Create(ctx, &domain.Booking{
		ClientName:    "Alice",
		ClientPhone:   "555-0100",
		EventType:     domain.EventCorporate,
		StartAt:       start,
		EndAt:         start.Add(3 * time.Hour),
		Location:      "Office",
		TotalAmount:   decimal.NewFromInt(900),
		DepositAmount: decimal.Zero,
		Status:        domain.StatusPending,
	})
	require.NoError(t, err)

	for i := 0; i < payments; i++ {
		_, err := f.payments.Create(ctx, &domain.Payment{
			BookingID:      b.ID,
			Amount:         decimal.NewFromInt(100),
			Method:         domain.MethodCash,
			Status:         domain.PaymentCompleted,
			PaidOn:         start,
			TransactionRef: domain.TransactionRefPrefix + "X",
		})
		require.NoError(t, err)
	}

	return b
}

func TestExecute_WithoutPayments(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t, 0)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: b.ID})
	require.NoError(t, err)
	assert.Zero(t, resp.DeletedPayments)

	_, err = f.bookings.GetByID(context.Background(), b.ID)
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)
}

func TestExecute_RefusesWhenPaymentsExist(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t, 2)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: b.ID})
	assert.ErrorIs(t, err, ErrBookingHasPayments)

	// nothing changed
	_, err = f.bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	count, err := f.payments.CountByBooking(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestExecute_Cascade(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t, 2)
	other := f.seed(t, 1)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: b.ID, Cascade: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.DeletedPayments)

	count, err := f.payments.CountByBooking(context.Background(), other.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: "missing"})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{BookingID: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

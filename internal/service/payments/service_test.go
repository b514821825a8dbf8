package payments

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
	"github.com/m04kA/SMC-EventLedger/internal/service/payments/models"
	"github.com/m04kA/SMC-EventLedger/pkg/ptr"
	"github.com/m04kA/SMC-EventLedger/pkg/sqlbuilder"
)

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType, _ string, _ interface{}) error {
	p.events = append(p.events, eventType)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	svc      *Service
	bookings *bookingRepo.Repository
	payments *paymentRepo.Repository
	pub      *recordingPublisher
}

func newFixture(t *testing.T) fixture {
	db := storagetest.NewSQLite(t)
	f := fixture{
		bookings: bookingRepo.NewRepository(db, sqlbuilder.DialectSQLite),
		payments: paymentRepo.NewRepository(db, sqlbuilder.DialectSQLite),
		pub:      &recordingPublisher{},
	}
	f.svc = NewService(f.payments, f.bookings, f.pub, nopLogger{})
	return f
}

func (f fixture) booking(t *testing.T, client string) *domain.Booking {
	start := time.Date(2025, 9, 6, 18, 0, 0, 0, time.UTC)
	b, err := f.bookings.Create(context.Background(), &domain.Booking{
		ClientName:    client,
		ClientPhone:   "555-0100",
		EventType:     domain.EventBirthday,
		StartAt:       start,
		EndAt:         start.Add(4 * time.Hour),
		Location:      "Loft",
		TotalAmount:   decimal.NewFromInt(800),
		DepositAmount: decimal.Zero,
		Status:        domain.StatusPending,
	})
	require.NoError(t, err)
	return b
}

func (f fixture) pay(t *testing.T, bookingID string, amount int64, status domain.PaymentStatus) *domain.Payment {
	p, err := f.payments.Create(context.Background(), &domain.Payment{
		BookingID:      bookingID,
		Amount:         decimal.NewFromInt(amount),
		Method:         domain.MethodCash,
		Status:         status,
		PaidOn:         time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		TransactionRef: domain.TransactionRefPrefix + "1",
	})
	require.NoError(t, err)
	return p
}

func TestService_List_CompletedTotal(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, "Alice")
	f.pay(t, b.ID, 300, domain.PaymentCompleted)
	f.pay(t, b.ID, 200, domain.PaymentPending)
	f.pay(t, b.ID, 100, domain.PaymentCompleted)

	resp, err := f.svc.List(context.Background(), &models.ListPaymentsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Count)
	assert.True(t, resp.CompletedTotal.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, "Alice", resp.Payments[0].ClientName)

	resp, err = f.svc.List(context.Background(), &models.ListPaymentsRequest{Status: ptr.Ptr("pending")})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	assert.True(t, resp.CompletedTotal.IsZero())

	_, err = f.svc.List(context.Background(), &models.ListPaymentsRequest{Method: ptr.Ptr("bitcoin")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ListByBooking(t *testing.T) {
	f := newFixture(t)
	alice := f.booking(t, "Alice")
	bob := f.booking(t, "Bob")
	first := f.pay(t, alice.ID, 300, domain.PaymentCompleted)
	f.pay(t, bob.ID, 50, domain.PaymentCompleted)
	second := f.pay(t, alice.ID, 100, domain.PaymentCompleted)

	resp, err := f.svc.ListByBooking(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, first.ID, resp.Payments[0].ID)
	assert.Equal(t, second.ID, resp.Payments[1].ID)

	_, err = f.svc.ListByBooking(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetAndDelete(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, "Alice")
	p := f.pay(t, b.ID, 300, domain.PaymentCompleted)

	got, err := f.svc.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-09-01", got.PaymentDate)

	require.NoError(t, f.svc.Delete(context.Background(), p.ID))
	assert.ErrorIs(t, f.svc.Delete(context.Background(), p.ID), ErrPaymentNotFound)

	_, err = f.svc.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
	assert.Equal(t, []string{eventbus.PaymentDeleted}, f.pub.events)
}

package expenses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventLedger/internal/infra/storage/expense"
	"github.com/m04kA/SMC-EventLedger/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-EventLedger/internal/integrations/eventbus"
	"github.com/m04kA/SMC-EventLedger/internal/service/expenses/models"
	"github.com/m04kA/SMC-EventLedger/pkg/ptr"
	"github.com/m04kA/SMC-EventLedger/pkg/sqlbuilder"
)

type recordingPublisher struct {
	events []string
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, eventType, _ string, _ interface{}) error {
	p.events = append(p.events, eventType)
	return p.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(t *testing.T, pub *recordingPublisher) *Service {
	repo := expense.NewRepository(storagetest.NewSQLite(t), sqlbuilder.DialectSQLite)
	return NewService(repo, pub, nopLogger{})
}

func request(desc, category, amount string) *models.ExpenseRequest {
	return &models.ExpenseRequest{
		Description:   desc,
		Category:      category,
		Amount:        decimal.RequireFromString(amount),
		ExpenseDate:   time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		PaymentMethod: "creditCard",
	}
}

func TestService_CRUD(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newService(t, pub)
	ctx := context.Background()

	created, err := svc.Create(ctx, request("  Mixer  ", "Equipment", "1200"))
	require.NoError(t, err)
	assert.Equal(t, "Mixer", created.Description)
	assert.Equal(t, "equipment", created.Category)
	assert.Equal(t, "2025-02-10", created.ExpenseDate)

	req := request("Mixer", "equipment", "1100.50")
	req.Notes = ptr.Ptr("discounted")
	updated, err := svc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(decimal.RequireFromString("1100.50")))

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "discounted", *got.Notes)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrExpenseNotFound)
	_, err = svc.Update(ctx, created.ID, req)
	assert.ErrorIs(t, err, ErrExpenseNotFound)

	assert.Equal(t, []string{eventbus.ExpenseCreated, eventbus.ExpenseUpdated, eventbus.ExpenseDeleted}, pub.events)
}

func TestService_Create_Validation(t *testing.T) {
	svc := newService(t, &recordingPublisher{})

	tests := []struct {
		name string
		req  *models.ExpenseRequest
	}{
		{"zero amount", request("Mixer", "equipment", "0")},
		{"unknown category", request("Mixer", "catering", "10")},
		{"blank description", request("   ", "equipment", "10")},
		{"venmo", func() *models.ExpenseRequest {
			r := request("Mixer", "equipment", "10")
			r.PaymentMethod = "venmo"
			return r
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_List_Totals(t *testing.T) {
	svc := newService(t, &recordingPublisher{})
	ctx := context.Background()

	for _, r := range []*models.ExpenseRequest{
		request("Flight", "travel", "320"),
		request("Hotel", "travel", "180.25"),
		request("Ads", "marketing", "50"),
	} {
		_, err := svc.Create(ctx, r)
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, &models.ListExpensesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Count)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("550.25")))
	assert.True(t, resp.ByCategory["travel"].Equal(decimal.RequireFromString("500.25")))
	assert.True(t, resp.ByCategory["marketing"].Equal(decimal.NewFromInt(50)))

	resp, err = svc.List(ctx, &models.ListExpensesRequest{Category: ptr.Ptr("marketing")})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)

	_, err = svc.List(ctx, &models.ListExpensesRequest{Sort: "alphabetical"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_PublishFailureDoesNotFailWrite(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("buffer full")}
	svc := newService(t, pub)

	created, err := svc.Create(context.Background(), request("Cables", "equipment", "25"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

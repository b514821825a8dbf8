package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
	bookingRepo "github.com/m04kA/SMC-EventLedger/internal/infra/storage/booking"
	"github.com/m04kA/SMC-EventLedger/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-EventLedger/internal/integrations/eventbus"
	"github.com/m04kA/SMC-EventLedger/pkg/sqlbuilder"
	"github.com/m04kA/SMC-EventLedger/pkg/txmanager"
)

type recordingPublisher struct {
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType, key string, _ interface{}) error {
	p.keys = append(p.keys, eventType+":"+key)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var evening = time.Date(2025, 7, 19, 18, 0, 0, 0, time.UTC)

func newUseCase(t *testing.T, maxConcurrent int) (*UseCase, *bookingRepo.Repository, *recordingPublisher) {
	db := storagetest.NewSQLite(t)
	repo := bookingRepo.NewRepository(db, sqlbuilder.DialectSQLite)
	pub := &recordingPublisher{}
	uc := NewUseCase(repo, txmanager.NewTransactionManager(db, false), pub, maxConcurrent, nopLogger{})
	return uc, repo, pub
}

func request(start time.Time, hours int, total, deposit string) *Request {
	return &Request{
		ClientName:    "  Alice  ",
		ClientPhone:   "555-0100",
		EventType:     "Wedding",
		StartAt:       start,
		EndAt:         start.Add(time.Duration(hours) * time.Hour),
		Location:      "Grand Hall",
		TotalAmount:   decimal.RequireFromString(total),
		DepositAmount: decimal.RequireFromString(deposit),
	}
}

func TestExecute_DerivesStatus(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		deposit string
		want    domain.BookingStatus
	}{
		{"deposit below total", "1000", "400", domain.StatusPending},
		{"fully paid", "1000", "1000", domain.StatusConfirmed},
		{"free event", "0", "0", domain.StatusConfirmed},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo, _ := newUseCase(t, 1)
			start := evening.AddDate(0, 0, i)

			resp, err := uc.Execute(context.Background(), request(start, 4, tt.total, tt.deposit))
			require.NoError(t, err)
			assert.Equal(t, string(tt.want), resp.Status)
			assert.Equal(t, "Alice", resp.ClientName)
			assert.Equal(t, "wedding", resp.EventType)

			stored, err := repo.GetByID(context.Background(), resp.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stored.Status)
		})
	}
}

func TestExecute_ScheduleConflict(t *testing.T) {
	uc, _, pub := newUseCase(t, 1)
	ctx := context.Background()

	first, err := uc.Execute(ctx, request(evening, 4, "1000", "0"))
	require.NoError(t, err)

	_, err = uc.Execute(ctx, request(evening.Add(2*time.Hour), 4, "500", "0"))
	assert.ErrorIs(t, err, ErrScheduleConflict)

	// touching intervals do not overlap
	_, err = uc.Execute(ctx, request(evening.Add(4*time.Hour), 2, "500", "0"))
	assert.NoError(t, err)

	assert.Len(t, pub.keys, 2)
	assert.Equal(t, eventbus.BookingCreated+":"+first.ID, pub.keys[0])
}

func TestExecute_CancelledBookingsDoNotBlock(t *testing.T) {
	uc, repo, _ := newUseCase(t, 1)
	ctx := context.Background()

	first, err := uc.Execute(ctx, request(evening, 4, "1000", "0"))
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, first.ID, domain.StatusCancelled))

	_, err = uc.Execute(ctx, request(evening, 4, "1000", "0"))
	assert.NoError(t, err)
}

func TestExecute_MaxConcurrentEvents(t *testing.T) {
	uc, _, _ := newUseCase(t, 2)
	ctx := context.Background()

	_, err := uc.Execute(ctx, request(evening, 4, "1000", "0"))
	require.NoError(t, err)
	_, err = uc.Execute(ctx, request(evening, 4, "1000", "0"))
	require.NoError(t, err)
	_, err = uc.Execute(ctx, request(evening, 4, "1000", "0"))
	assert.ErrorIs(t, err, ErrScheduleConflict)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _, pub := newUseCase(t, 1)

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"end before start", func(r *Request) { r.EndAt = r.StartAt.Add(-time.Hour) }},
		{"deposit above total", func(r *Request) { r.DepositAmount = decimal.NewFromInt(5000) }},
		{"unknown event type", func(r *Request) { r.EventType = "conference" }},
		{"missing client", func(r *Request) { r.ClientName = "" }},
		{"total above column precision", func(r *Request) { r.TotalAmount = decimal.New(1, 15) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request(evening, 4, "1000", "0")
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, pub.keys)
}

package bookings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
	bookingRepo "github.com/m04kA/SMC-EventLedger/internal/infra/storage/booking"
	"github.com/m04kA/SMC-EventLedger/internal/integrations/eventbus"
	"github.com/m04kA/SMC-EventLedger/internal/service/bookings/models"
	"github.com/m04kA/SMC-EventLedger/pkg/ptr"
)

type fakeRepo struct {
	items map[string]*domain.Booking
	order []string
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	r := &fakeRepo{items: map[string]*domain.Booking{}}
	for _, b := range bookings {
		r.items[b.ID] = b
		r.order = append(r.order, b.ID)
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := r.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeRepo) List(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, id := range r.order {
		b := r.items[id]
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *fakeRepo) ListOverlapping(_ context.Context, start, end time.Time, excludeID string) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, id := range r.order {
		b := r.items[id]
		if id != excludeID && b.IsActive() && b.Overlaps(start, end) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (r *fakeRepo) Update(_ context.Context, booking *domain.Booking) error {
	if _, ok := r.items[booking.ID]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	clone := *booking
	r.items[booking.ID] = &clone
	return nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) error {
	b, ok := r.items[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType, _ string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var saturday = time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

func booking(id string, startHour, hours int, total, deposit int64, status domain.BookingStatus) *domain.Booking {
	start := saturday.Add(time.Duration(startHour) * time.Hour)
	return &domain.Booking{
		ID:            id,
		ClientName:    "Client " + id,
		ClientPhone:   "555-0100",
		EventType:     domain.EventWedding,
		StartAt:       start,
		EndAt:         start.Add(time.Duration(hours) * time.Hour),
		Location:      "Grand Hall",
		TotalAmount:   decimal.NewFromInt(total),
		DepositAmount: decimal.NewFromInt(deposit),
		Status:        status,
	}
}

func updateRequest(b *domain.Booking) *models.UpdateBookingRequest {
	return &models.UpdateBookingRequest{
		ClientName:    b.ClientName,
		ClientPhone:   b.ClientPhone,
		EventType:     string(b.EventType),
		StartAt:       b.StartAt,
		EndAt:         b.EndAt,
		Location:      b.Location,
		TotalAmount:   b.TotalAmount,
		DepositAmount: b.DepositAmount,
		Notes:         b.Notes,
	}
}

func newService(repo *fakeRepo, pub *recordingPublisher) *Service {
	svc := NewService(repo, fakeTx{}, pub, 1, nopLogger{})
	svc.timeProvider = fixedTime{now: saturday}
	return svc
}

func TestService_GetByID(t *testing.T) {
	svc := newService(newFakeRepo(booking("b1", 18, 4, 1000, 400, domain.StatusPending)), &recordingPublisher{})

	resp, err := svc.GetByID(context.Background(), "b1")
	require.NoError(t, err)
	assert.True(t, resp.PendingAmount.Equal(decimal.NewFromInt(600)))

	_, err = svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_List(t *testing.T) {
	repo := newFakeRepo(
		booking("b1", 10, 2, 100, 0, domain.StatusPending),
		booking("b2", 13, 2, 100, 100, domain.StatusConfirmed),
		booking("b3", 16, 2, 100, 0, domain.StatusPending),
	)
	svc := newService(repo, &recordingPublisher{})

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("pending")})
	require.NoError(t, err)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "b1", resp.Bookings[0].ID)
	assert.Equal(t, "b3", resp.Bookings[1].ID)

	_, err = svc.List(context.Background(), &models.ListBookingsRequest{Timeframe: "nextDecade"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("Archived")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Update_RecomputesStatus(t *testing.T) {
	repo := newFakeRepo(booking("b1", 18, 4, 1000, 400, domain.StatusPending))
	pub := &recordingPublisher{}
	svc := newService(repo, pub)

	req := updateRequest(repo.items["b1"])
	req.DepositAmount = decimal.NewFromInt(1000)

	resp, err := svc.Update(context.Background(), "b1", req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, domain.StatusConfirmed, repo.items["b1"].Status)
	assert.Equal(t, []string{eventbus.BookingUpdated}, pub.events)
}

func TestService_Update_KeepsTerminalStatus(t *testing.T) {
	repo := newFakeRepo(booking("b1", 18, 4, 1000, 400, domain.StatusCompleted))
	svc := newService(repo, &recordingPublisher{})

	req := updateRequest(repo.items["b1"])
	req.Location = "Beach Club"

	resp, err := svc.Update(context.Background(), "b1", req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, "Beach Club", repo.items["b1"].Location)
}

func TestService_Update_Errors(t *testing.T) {
	repo := newFakeRepo(
		booking("b1", 10, 4, 1000, 0, domain.StatusPending),
		booking("b2", 18, 4, 1000, 0, domain.StatusPending),
	)
	pub := &recordingPublisher{}
	svc := newService(repo, pub)

	t.Run("not found", func(t *testing.T) {
		_, err := svc.Update(context.Background(), "missing", updateRequest(repo.items["b1"]))
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("validation", func(t *testing.T) {
		req := updateRequest(repo.items["b1"])
		req.DepositAmount = decimal.NewFromInt(5000)
		_, err := svc.Update(context.Background(), "b1", req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("moved onto another event", func(t *testing.T) {
		req := updateRequest(repo.items["b1"])
		req.StartAt = saturday.Add(17 * time.Hour)
		req.EndAt = saturday.Add(19 * time.Hour)
		_, err := svc.Update(context.Background(), "b1", req)
		assert.ErrorIs(t, err, ErrScheduleConflict)
	})

	t.Run("moved next to another event", func(t *testing.T) {
		req := updateRequest(repo.items["b1"])
		req.StartAt = saturday.Add(14 * time.Hour)
		req.EndAt = saturday.Add(18 * time.Hour)
		_, err := svc.Update(context.Background(), "b1", req)
		assert.NoError(t, err)
	})

	assert.Equal(t, []string{eventbus.BookingUpdated}, pub.events)
}

func TestService_UpdateStatus(t *testing.T) {
	repo := newFakeRepo(booking("b1", 18, 4, 1000, 400, domain.StatusPending))
	pub := &recordingPublisher{}
	svc := newService(repo, pub)

	_, err := svc.UpdateStatus(context.Background(), "b1", "Confirmed")
	assert.ErrorIs(t, err, ErrStatusDerived)

	_, err = svc.UpdateStatus(context.Background(), "b1", "Archived")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateStatus(context.Background(), "missing", "Cancelled")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	resp, err := svc.UpdateStatus(context.Background(), "b1", "cancelled")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, domain.StatusCancelled, repo.items["b1"].Status)
	assert.Equal(t, []string{eventbus.BookingStatusChanged}, pub.events)
}

func TestService_Reopen(t *testing.T) {
	repo := newFakeRepo(
		booking("b1", 18, 4, 1000, 1000, domain.StatusCancelled),
		booking("b2", 10, 2, 500, 0, domain.StatusPending),
	)
	pub := &recordingPublisher{}
	svc := newService(repo, pub)

	resp, err := svc.Reopen(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	// already open: nothing to change, no event
	resp, err = svc.Reopen(context.Background(), "b2")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)

	assert.Equal(t, []string{eventbus.BookingStatusChanged}, pub.events)
}

func TestService_Reopen_Conflict(t *testing.T) {
	repo := newFakeRepo(
		booking("b1", 18, 4, 1000, 0, domain.StatusCancelled),
		booking("b2", 19, 2, 500, 0, domain.StatusPending),
	)
	svc := newService(repo, &recordingPublisher{})

	_, err := svc.Reopen(context.Background(), "b1")
	assert.ErrorIs(t, err, ErrScheduleConflict)
	assert.Equal(t, domain.StatusCancelled, repo.items["b1"].Status)
}

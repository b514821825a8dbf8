package eventbus

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventLedger/pkg/metrics"
)

type fakeWriter struct {
	mu      sync.Mutex
	msgs    []kafka.Message
	closed  bool
	release chan struct{}
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.release != nil {
		<-w.release
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestKafkaPublisher_PublishAndFlushOnClose(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisher(w, "event-ledger", 8, nopLogger{})

	require.NoError(t, p.Publish(context.Background(), BookingCreated, "b-1", map[string]string{"clientName": "Alice"}))
	require.NoError(t, p.Publish(context.Background(), PaymentRecorded, "p-1", map[string]string{"amount": "400"}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Close(ctx))

	w.mu.Lock()
	defer w.mu.Unlock()
	require.Len(t, w.msgs, 2)
	assert.True(t, w.closed)
	assert.Equal(t, "b-1", string(w.msgs[0].Key))

	var env Envelope
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &env))
	assert.Equal(t, BookingCreated, env.EventType)
	assert.Equal(t, "event-ledger", env.Producer)
	assert.NotEmpty(t, env.EventID)
	assert.JSONEq(t, `{"clientName":"Alice"}`, string(env.Payload))

	assert.ErrorIs(t, p.Publish(context.Background(), BookingDeleted, "b-1", nil), ErrClosed)
}

func TestKafkaPublisher_DropsWhenBufferFull(t *testing.T) {
	w := &fakeWriter{release: make(chan struct{})}
	m := metrics.NewWithRegisterer(prometheus.NewRegistry(), "test")
	p := NewKafkaPublisher(w, "event-ledger", 1, nopLogger{}).WithMetrics(m, "test")

	// first message is taken by the writer goroutine and blocks there,
	// second fills the buffer, the rest are dropped
	var dropped int
	for i := 0; i < 5; i++ {
		if err := p.Publish(context.Background(), ExpenseCreated, "e", nil); err != nil {
			assert.ErrorIs(t, err, ErrBufferFull)
			dropped++
		}
	}
	assert.GreaterOrEqual(t, dropped, 3)
	assert.Equal(t, float64(dropped), testutil.ToFloat64(m.EventsDroppedTotal.WithLabelValues("test")))

	close(w.release)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Close(ctx))
}

func TestInstrumented_CountsOperations(t *testing.T) {
	m := metrics.NewWithRegisterer(prometheus.NewRegistry(), "test")
	pub := NewInstrumented(NoopPublisher{}, m, "test")

	require.NoError(t, pub.Publish(context.Background(), BookingStatusChanged, "b-1", nil))
	require.NoError(t, pub.Publish(context.Background(), BookingStatusChanged, "b-2", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LedgerOperationsTotal.WithLabelValues("test", "booking", "status_changed")))
}

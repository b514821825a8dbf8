package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-EventLedger/pkg/metrics"
)

// Publisher публикует события журнала
type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload interface{}) error
}

// NewKafkaWriter создает писателя для топика событий
// Ключ сообщения - ID записи, поэтому события одной записи попадают в одну партицию
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
}

// KafkaPublisher асинхронный публикатор событий
// Publish кладет сообщение в буфер и не блокируется; фоновая горутина пишет буфер в Kafka.
// При переполнении буфера событие отбрасывается.
type KafkaPublisher struct {
	w        MessageWriter
	producer string
	logger   Logger
	dropped  prometheus.Counter

	mu     sync.RWMutex
	closed bool
	inbox  chan kafka.Message
	done   chan struct{}
}

// NewKafkaPublisher создает публикатор и запускает фоновую запись
func NewKafkaPublisher(w MessageWriter, producer string, bufferSize int, logger Logger) *KafkaPublisher {
	p := &KafkaPublisher{
		w:        w,
		producer: producer,
		logger:   logger,
		inbox:    make(chan kafka.Message, bufferSize),
		done:     make(chan struct{}),
	}
	go p.run()
	return p
}

// WithMetrics включает подсчет отброшенных событий
func (p *KafkaPublisher) WithMetrics(m *metrics.Metrics, serviceName string) *KafkaPublisher {
	p.dropped = m.EventsDroppedTotal.WithLabelValues(serviceName)
	return p
}

// Publish упаковывает payload в конверт и ставит в очередь на отправку
func (p *KafkaPublisher) Publish(_ context.Context, eventType, key string, payload interface{}) error {
	value, err := encode(p.producer, eventType, payload)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}

	select {
	case p.inbox <- msg:
		return nil
	default:
		if p.dropped != nil {
			p.dropped.Inc()
		}
		p.logger.Warn("EventBus: buffer full, dropping event type=%s key=%s", eventType, key)
		return ErrBufferFull
	}
}

// Close прекращает прием событий, дописывает буфер и закрывает писателя
// Ожидание ограничено контекстом
func (p *KafkaPublisher) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.inbox)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *KafkaPublisher) run() {
	defer close(p.done)

	for msg := range p.inbox {
		if err := p.w.WriteMessages(context.Background(), msg); err != nil {
			p.logger.Error("EventBus: failed to write event key=%s: %v", string(msg.Key), err)
		}
	}

	if err := p.w.Close(); err != nil {
		p.logger.Error("EventBus: failed to close writer: %v", err)
	}
}

func encode(producer, eventType string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload of %s: %v", ErrEncode, eventType, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("%w: event id: %v", ErrEncode, err)
	}

	value, err := json.Marshal(Envelope{
		EventID:    id.String(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Producer:   producer,
		Payload:    raw,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: envelope of %s: %v", ErrEncode, eventType, err)
	}

	return value, nil
}

// NoopPublisher публикатор для конфигурации без Kafka
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, string, interface{}) error {
	return nil
}

// Instrumented считает операции журнала в метрике ledger_operations_total
// и передает событие дальше
type Instrumented struct {
	next        Publisher
	metrics     *metrics.Metrics
	serviceName string
}

// NewInstrumented оборачивает публикатор подсчетом операций
func NewInstrumented(next Publisher, m *metrics.Metrics, serviceName string) *Instrumented {
	return &Instrumented{next: next, metrics: m, serviceName: serviceName}
}

func (i *Instrumented) Publish(ctx context.Context, eventType, key string, payload interface{}) error {
	entity, operation := splitType(eventType)
	i.metrics.LedgerOperationsTotal.WithLabelValues(i.serviceName, entity, operation).Inc()
	return i.next.Publish(ctx, eventType, key, payload)
}

package journal

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/TemirB/merchant-orders-sync/internal/config"
)

//go:generate mockgen -source internal/journal/kafka.go -destination=internal/journal/kafka_mock_test.go -package=journal

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

const writeTimeout = 5 * time.Second

type Kafka struct {
	writer Writer
	pool   *pool
	logger *zap.Logger
}

func NewKafkaWriter(cfg config.Kafka) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: false,
	}
}

func NewKafka(writer Writer, workers int, logger *zap.Logger) *Kafka {
	return &Kafka{
		writer: writer,
		pool:   newPool(workers, 256),
		logger: logger,
	}
}

// Publish queues the entry keyed by order id so per-order ordering holds on
// one partition. It never blocks the caller.
func (k *Kafka) Publish(ctx context.Context, e Entry) {
	value, err := json.Marshal(e)
	if err != nil {
		k.logger.Error("failed to encode journal entry", zap.String("event_id", e.EventID), zap.Error(err))
		return
	}
	msg := kafkago.Message{
		Key:   []byte(e.OrderID),
		Value: value,
		Time:  e.AppliedAt,
	}

	ctx = context.WithoutCancel(ctx)
	queued := k.pool.trySubmit(func() {
		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		defer cancel()
		if err := k.writer.WriteMessages(wctx, msg); err != nil {
			k.logger.Warn("failed to publish journal entry",
				zap.String("event_id", e.EventID),
				zap.String("order_id", e.OrderID),
				zap.Error(err),
			)
			return
		}
		k.logger.Debug("journal entry published", zap.String("event_id", e.EventID))
	})
	if !queued {
		k.logger.Warn("journal backlog full or closed, entry dropped", zap.String("event_id", e.EventID))
	}
}

// Close flushes queued entries and closes the writer.
func (k *Kafka) Close() error {
	k.pool.close()
	return k.writer.Close()
}

package journal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/TemirB/merchant-orders-sync/internal/config"
)

var (
	errNoBrokers  = errors.New("no kafka brokers configured")
	errEmptyTopic = errors.New("empty topic")
)

const topicReadyTimeout = 10 * time.Second

// EnsureTopic creates the journal topic when it is missing and waits until its
// partitions are visible. Calling it for an existing topic is a no-op.
func EnsureTopic(ctx context.Context, cfg config.Kafka, logger *zap.Logger) error {
	if len(cfg.Brokers) == 0 {
		return errNoBrokers
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return errEmptyTopic
	}

	dialer := &kafkago.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", cfg.Brokers[0])
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer conn.Close()

	if parts, err := conn.ReadPartitions(cfg.Topic); err == nil && len(parts) > 0 {
		logger.Info("journal topic exists", zap.String("topic", cfg.Topic), zap.Int("partitions", len(parts)))
		return nil
	}

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("get controller: %w", err)
	}
	ctrlAddr := net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port))
	ctrlConn, err := dialer.DialContext(ctx, "tcp", ctrlAddr)
	if err != nil {
		return fmt.Errorf("dial controller %s: %w", ctrlAddr, err)
	}
	defer ctrlConn.Close()

	logger.Info("creating journal topic",
		zap.String("topic", cfg.Topic),
		zap.Int("partitions", cfg.Partitions),
	)
	err = ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             cfg.Topic,
		NumPartitions:     cfg.Partitions,
		ReplicationFactor: 1,
	})
	if err != nil && !errors.Is(err, kafkago.TopicAlreadyExists) {
		return fmt.Errorf("create topic: %w", err)
	}

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(topicReadyTimeout)
	for {
		parts, err := conn.ReadPartitions(cfg.Topic)
		if err == nil && len(parts) >= cfg.Partitions {
			logger.Info("journal topic is ready", zap.String("topic", cfg.Topic), zap.Int("partitions", len(parts)))
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return fmt.Errorf("topic %s not visible after creation", cfg.Topic)
		case <-ticker.C:
		}
	}
}

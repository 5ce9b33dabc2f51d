package kafka

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"envio-courier-tracking/internal/logx"
)

// Message is one consumed record, decoupled from sarama for handlers.
type Message struct {
	Topic     string
	Key       []byte
	Value     []byte
	Timestamp time.Time
}

// HandleFunc processes a single record. Returning a PermanentError marks the
// record consumed anyway; any other error triggers redelivery.
type HandleFunc func(ctx context.Context, msg Message) error

// Consumer wraps a Sarama consumer group and dispatches records to a handler.
type Consumer struct {
	group   sarama.ConsumerGroup
	topics  []string
	handler HandleFunc
	logger  logx.Logger
}

// NewConsumer creates a new Kafka consumer. Returns (nil, nil) when the
// broker settings are absent, so deployments without Kafka keep working.
func NewConsumer(brokers []string, groupID string, topics []string, h HandleFunc, logger logx.Logger) (*Consumer, error) {
	if len(brokers) == 0 || len(topics) == 0 || strings.TrimSpace(groupID) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logx.Nop()
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := sarama.NewConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:   group,
		topics:  topics,
		handler: h,
		logger:  logger,
	}, nil
}

// Run starts the consumer loop and blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	h := &groupHandler{c: c}

	for {
		if err := c.group.Consume(ctx, c.topics, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("kafka consume error", logx.Any("err", err))
			time.Sleep(time.Second)
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Close shuts the consumer group down.
func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

type groupHandler struct{ c *Consumer }

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		err := h.c.handler(sess.Context(), Message{
			Topic:     msg.Topic,
			Key:       msg.Key,
			Value:     msg.Value,
			Timestamp: msg.Timestamp,
		})
		if err != nil {
			var perm PermanentError
			if errors.As(err, &perm) {
				h.c.logger.Warn("kafka record dropped",
					logx.String("topic", msg.Topic),
					logx.Any("err", err),
				)
				sess.MarkMessage(msg, "")
				continue
			}
			h.c.logger.Error("kafka handle failed, will retry",
				logx.String("topic", msg.Topic),
				logx.Any("err", err),
			)
			return err
		}
		sess.MarkMessage(msg, "")
	}
	return nil
}

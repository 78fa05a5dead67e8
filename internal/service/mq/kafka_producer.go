package mq

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"evtc/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaProducer 实现 Producer 接口
type KafkaProducer struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// NewKafkaProducer brokers 为 Kafka 节点地址列表，topic 为 Writer 的固定主题
func NewKafkaProducer(brokers []string, topic string, log *zap.Logger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
		BatchSize:              1,
		BatchTimeout:           10 * time.Millisecond,
	}

	return &KafkaProducer{writer: writer, log: logger.Or(log)}
}

// Publish topic 必须与 Writer 的主题一致
func (p *KafkaProducer) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	if topic != p.writer.Topic {
		return fmt.Errorf("kafka producer is bound to topic %q, not %q", p.writer.Topic, topic)
	}

	msg := kafka.Message{
		Value: payload,
		Key:   []byte(key),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("kafka publish failed", zap.String("topic", topic), zap.Error(err))
		return fmt.Errorf("kafka write error: %w", err)
	}

	p.log.Debug("kafka published", zap.String("topic", topic), zap.String("key", key))
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

package mq

import (
	"context"
	"time"

	"evtc/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaConsumer 实现 Consumer 接口
type KafkaConsumer struct {
	brokers []string
	groupID string
	reader  *kafka.Reader
	log     *zap.Logger
}

func NewKafkaConsumer(brokers []string, groupID string, log *zap.Logger) *KafkaConsumer {
	return &KafkaConsumer{
		brokers: brokers,
		groupID: groupID,
		log:     logger.Or(log),
	}
}

// Subscribe 手动提交 offset：handler 失败的消息不提交，重试成功后才继续读取
func (c *KafkaConsumer) Subscribe(ctx context.Context, topic string, handler func(msg *Message) error) error {
	c.reader = kafka.NewReader(kafka.ReaderConfig{
		Brokers:     c.brokers,
		GroupID:     c.groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})

	c.log.Info("kafka consumer started", zap.String("topic", topic), zap.String("group", c.groupID))

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.Warn("kafka fetch failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		msg := &Message{
			ID:      kafkaOffsetID(m),
			Topic:   topic,
			Key:     string(m.Key),
			Payload: m.Value,
		}

		// 提交后面的 offset 会隐式提交前面的消息，所以失败的消息在原地退避重试
		for {
			err := handler(msg)
			if err == nil {
				break
			}
			c.log.Warn("kafka message not committed", zap.String("id", msg.ID), zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(retryBackoff):
			}
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.log.Error("kafka commit failed", zap.String("id", msg.ID), zap.Error(err))
		}
	}
}

func kafkaOffsetID(m kafka.Message) string {
	return m.Topic + "/" + itoa(int64(m.Partition)) + "/" + itoa(m.Offset)
}

func (c *KafkaConsumer) Close() error {
	if c.reader != nil {
		return c.reader.Close()
	}
	return nil
}

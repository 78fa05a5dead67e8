package mq

import (
	"context"
	"fmt"
	"time"

	"evtc/pkg/config"
	"evtc/pkg/database"

	"go.uber.org/zap"
)

// 队列类型
const (
	TypeNone  = "none"
	TypeRedis = "redis"
	TypeKafka = "kafka"
)

// retryBackoff handler 失败后重新投递前的等待
const retryBackoff = 2 * time.Second

// Message 队列中的一条交易消息
type Message struct {
	ID       string            // Redis Stream ID 或 Kafka offset
	Topic    string            // 主题 (例如 "evt.transactions")
	Key      string            // 分区键，使用交易 id
	Payload  []byte            // 消息体 (JSON)
	Metadata map[string]string // 元数据
}

// Producer 生产者接口
type Producer interface {
	// Publish 发送消息，key 用于分区，传空字符串则随机分区
	Publish(ctx context.Context, topic string, key string, payload []byte) error
	Close() error
}

// Consumer 消费者接口
type Consumer interface {
	// Subscribe 订阅主题，阻塞直到 ctx 取消
	// handler 返回 error 时消息不确认，留待重新投递
	Subscribe(ctx context.Context, topic string, handler func(msg *Message) error) error

	Close() error
}

// NewProducer 按 mq.type 创建生产者；type 为 none 时返回 nil
func NewProducer(ctx context.Context, cfg *config.Config, log *zap.Logger) (Producer, error) {
	switch cfg.MQ.Type {
	case "", TypeNone:
		return nil, nil
	case TypeRedis:
		rdb, err := database.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			return nil, err
		}
		return NewRedisProducer(rdb, log), nil
	case TypeKafka:
		return NewKafkaProducer(cfg.Kafka.Brokers, cfg.MQ.Topic, log), nil
	default:
		return nil, fmt.Errorf("unknown mq type %q", cfg.MQ.Type)
	}
}

// NewConsumer 按 mq.type 创建消费者，name 为 Redis 消费者名
func NewConsumer(ctx context.Context, cfg *config.Config, name string, log *zap.Logger) (Consumer, error) {
	switch cfg.MQ.Type {
	case TypeRedis:
		rdb, err := database.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			return nil, err
		}
		return NewRedisConsumer(rdb, cfg.MQ.Group, name, log), nil
	case TypeKafka:
		return NewKafkaConsumer(cfg.Kafka.Brokers, cfg.MQ.Group, log), nil
	default:
		return nil, fmt.Errorf("mq type %q cannot be consumed", cfg.MQ.Type)
	}
}

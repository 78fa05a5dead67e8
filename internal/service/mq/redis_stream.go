package mq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"evtc/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	fieldPayload = "payload"
	fieldKey     = "key"
)

// RedisProducer 基于 Redis Streams (XADD) 的生产者
type RedisProducer struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisProducer(client *redis.Client, log *zap.Logger) *RedisProducer {
	return &RedisProducer{client: client, log: logger.Or(log)}
}

func (p *RedisProducer) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: topic,
		Values: map[string]interface{}{
			fieldPayload: payload,
			fieldKey:     key,
		},
	}).Result()
	if err != nil {
		p.log.Error("redis publish failed", zap.String("stream", topic), zap.Error(err))
		return fmt.Errorf("redis xadd error: %w", err)
	}

	p.log.Debug("redis published", zap.String("stream", topic), zap.String("id", id), zap.String("key", key))
	return nil
}

func (p *RedisProducer) Close() error {
	return p.client.Close()
}

// RedisConsumer 基于消费者组 (XREADGROUP) 的消费者
type RedisConsumer struct {
	client *redis.Client
	group  string
	name   string
	log    *zap.Logger
}

func NewRedisConsumer(client *redis.Client, group, name string, log *zap.Logger) *RedisConsumer {
	return &RedisConsumer{
		client: client,
		group:  group,
		name:   name,
		log:    logger.Or(log),
	}
}

// Subscribe 先处理本消费者名下未确认的消息，再读取新消息
func (c *RedisConsumer) Subscribe(ctx context.Context, topic string, handler func(msg *Message) error) error {
	err := c.client.XGroupCreateMkStream(ctx, topic, c.group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("create consumer group: %w", err)
	}

	c.log.Info("redis consumer started", zap.String("stream", topic), zap.String("group", c.group), zap.String("consumer", c.name))

	// "0" 读取 pending 列表，读空后切换到 ">"
	cursor := "0"
	for {
		if ctx.Err() != nil {
			return nil
		}

		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.group,
			Consumer: c.name,
			Streams:  []string{topic, cursor},
			Count:    16,
			Block:    2 * time.Second,
		}).Result()

		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.Warn("redis read failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		delivered, failed := 0, 0
		for _, stream := range streams {
			for _, x := range stream.Messages {
				delivered++
				if !c.handle(ctx, topic, x, handler) {
					failed++
				}
			}
		}
		switch {
		case failed > 0:
			// 失败的消息留在 pending 列表，退避后从 "0" 重新读取
			cursor = "0"
			time.Sleep(retryBackoff)
		case cursor == "0" && delivered == 0:
			cursor = ">"
		}
	}
}

// handle 返回 false 表示消息未确认
func (c *RedisConsumer) handle(ctx context.Context, topic string, x redis.XMessage, handler func(msg *Message) error) bool {
	val, ok := x.Values[fieldPayload].(string)
	if !ok {
		c.log.Warn("redis message without payload dropped", zap.String("id", x.ID))
		c.ack(ctx, topic, x.ID)
		return true
	}
	key, _ := x.Values[fieldKey].(string)

	msg := &Message{
		ID:      x.ID,
		Topic:   topic,
		Key:     key,
		Payload: []byte(val),
	}

	if err := handler(msg); err != nil {
		c.log.Warn("redis message left pending", zap.String("id", x.ID), zap.Error(err))
		return false
	}
	c.ack(ctx, topic, x.ID)
	return true
}

func (c *RedisConsumer) ack(ctx context.Context, topic, id string) {
	if err := c.client.XAck(ctx, topic, c.group, id).Err(); err != nil {
		c.log.Error("redis ack failed", zap.String("id", id), zap.Error(err))
	}
}

func (c *RedisConsumer) Close() error {
	return c.client.Close()
}

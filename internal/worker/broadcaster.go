package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"evtc/internal/client"
	"evtc/internal/event"
	"evtc/internal/service/mq"
	"evtc/pkg/chain/types"
	"evtc/pkg/errno"
	"evtc/pkg/logger"
	"evtc/pkg/monitor"

	"go.uber.org/zap"
)

// Pusher 把已签名的打包交易提交到节点
type Pusher interface {
	PushTransaction(ctx context.Context, packed *types.PackedTransaction) (json.RawMessage, error)
}

// Broadcaster 消费队列中的交易并提交到节点
type Broadcaster struct {
	node    Pusher
	dial    func(url string) Pusher
	timeout time.Duration
	log     *zap.Logger

	mu      sync.Mutex
	clients map[string]Pusher
}

// NewBroadcaster node 为默认节点；事件携带其他 node_url 时通过 dial 创建客户端
func NewBroadcaster(node Pusher, dial func(url string) Pusher, timeout time.Duration, log *zap.Logger) *Broadcaster {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Broadcaster{
		node:    node,
		dial:    dial,
		timeout: timeout,
		log:     logger.Or(log),
		clients: make(map[string]Pusher),
	}
}

// DialNode 以 NodeClient 作为 dial 函数
func DialNode(timeout time.Duration, log *zap.Logger) func(url string) Pusher {
	return func(url string) Pusher {
		return client.NewNodeClient(url, timeout, log)
	}
}

// Run 订阅 topic，阻塞直到 ctx 取消
func (b *Broadcaster) Run(ctx context.Context, consumer mq.Consumer, topic string) error {
	b.log.Info("broadcaster subscribed", zap.String("topic", topic))
	return consumer.Subscribe(ctx, topic, func(msg *mq.Message) error {
		return b.Handle(ctx, msg)
	})
}

// Handle 处理一条消息。
// 返回 nil 表示消息可以确认：提交成功、节点拒绝或消息无法解析。
// 连接失败返回 error，消息保留等待重新投递。
func (b *Broadcaster) Handle(ctx context.Context, msg *mq.Message) error {
	ev, err := event.DecodeTransactionQueued(msg.Payload)
	if err != nil {
		b.log.Error("drop malformed message", zap.String("id", msg.ID), zap.Error(err))
		monitor.Chain.QueueMessage("malformed")
		return nil
	}

	log := b.log.With(zap.String("msg", msg.ID), zap.String("trx", ev.TransactionID.String()))

	pushCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	out, err := b.nodeFor(ev.NodeURL).PushTransaction(pushCtx, ev.Packed)
	switch {
	case err == nil:
		log.Info("transaction pushed", zap.Duration("queued", time.Since(ev.QueuedAt)), zap.ByteString("processed", compact(out)))
		monitor.Chain.QueueMessage("pushed")
		return nil
	case errors.Is(err, errno.ErrConnection):
		log.Warn("node unreachable, message kept", zap.Error(err))
		monitor.Chain.QueueMessage("retry")
		return err
	default:
		log.Error("transaction rejected", zap.Error(err))
		monitor.Chain.QueueMessage("rejected")
		return nil
	}
}

func (b *Broadcaster) nodeFor(url string) Pusher {
	url = strings.TrimRight(url, "/")
	if url == "" || b.dial == nil {
		return b.node
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.clients[url]
	if !ok {
		p = b.dial(url)
		b.clients[url] = p
	}
	return p
}

func compact(raw json.RawMessage) []byte {
	if len(raw) > 512 {
		return raw[:512]
	}
	return raw
}

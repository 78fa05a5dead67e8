package broadcaster

import (
	"context"
	"encoding/json"
	"time"

	"evtc/internal/event"
	"evtc/internal/service/mq"
	"evtc/pkg/chain/types"
	"evtc/pkg/errno"
	"evtc/pkg/logger"

	"go.uber.org/zap"
)

// Mode 每次调用只走一条路径
type Mode int

const (
	ModePush   Mode = iota // 打包后提交到节点
	ModeReturn             // 不广播，直接返回交易
	ModeQueue              // 打包后写入消息队列，由 broadcaster-worker 提交
)

func (m Mode) String() string {
	switch m {
	case ModePush:
		return "push"
	case ModeReturn:
		return "return"
	case ModeQueue:
		return "queue"
	}
	return "unknown"
}

// PushAPI 节点提交接口
type PushAPI interface {
	PushTransaction(ctx context.Context, packed *types.PackedTransaction) (json.RawMessage, error)
	PushTransactions(ctx context.Context, trxs json.RawMessage) (json.RawMessage, error)
}

// Result Output 为最终打印给用户的 JSON
type Result struct {
	Mode        Mode
	Transaction *types.SignedTransaction
	Packed      *types.PackedTransaction
	Event       *event.TransactionQueuedEvent
	Output      json.RawMessage
}

type Broadcaster struct {
	node     PushAPI
	producer mq.Producer
	topic    string
	nodeURL  string
	now      func() time.Time
	log      *zap.Logger
}

// New producer 可为 nil，此时不支持 ModeQueue
func New(node PushAPI, producer mq.Producer, topic, nodeURL string, log *zap.Logger) *Broadcaster {
	return &Broadcaster{
		node:     node,
		producer: producer,
		topic:    topic,
		nodeURL:  nodeURL,
		now:      time.Now,
		log:      logger.Or(log),
	}
}

// Broadcast 不做重试
func (b *Broadcaster) Broadcast(ctx context.Context, st *types.SignedTransaction, mode Mode, c types.Compression) (*Result, error) {
	res := &Result{Mode: mode, Transaction: st}

	if mode == ModeReturn {
		out, err := json.Marshal(st)
		if err != nil {
			return nil, errno.ErrTransactionFormat.Wrap(err, "encode transaction")
		}
		res.Output = out
		return res, nil
	}

	packed, err := types.Pack(st, c)
	if err != nil {
		return nil, errno.ErrTransactionFormat.Wrap(err, "pack transaction")
	}
	res.Packed = packed

	switch mode {
	case ModePush:
		out, err := b.node.PushTransaction(ctx, packed)
		if err != nil {
			return nil, err
		}
		b.log.Debug("transaction pushed", zap.String("compression", string(packed.Compression)), zap.Int("signatures", len(packed.Signatures)))
		res.Output = out
	case ModeQueue:
		ev, err := b.enqueue(ctx, packed)
		if err != nil {
			return nil, err
		}
		res.Event = ev
		if res.Output, err = json.Marshal(ev); err != nil {
			return nil, err
		}
	default:
		return nil, errno.InternalServerError.New("unknown broadcast mode %d", mode)
	}
	return res, nil
}

func (b *Broadcaster) enqueue(ctx context.Context, packed *types.PackedTransaction) (*event.TransactionQueuedEvent, error) {
	if b.producer == nil {
		return nil, errno.ErrBind.New("queue mode requires mq.type to be redis or kafka")
	}

	ev, err := event.NewTransactionQueuedEvent(packed, b.nodeURL, b.now())
	if err != nil {
		return nil, errno.ErrTransactionFormat.Wrap(err, "queued transaction")
	}
	payload, err := ev.Marshal()
	if err != nil {
		return nil, errno.ErrTransactionFormat.Wrap(err, "queued event")
	}

	if err := b.producer.Publish(ctx, b.topic, ev.TransactionID.String(), payload); err != nil {
		return nil, errno.ErrConnection.Wrap(err, "publish to %s", b.topic)
	}

	b.log.Info("transaction queued", zap.String("topic", b.topic), zap.Stringer("trx_id", ev.TransactionID))
	return ev, nil
}

// PushBatch 原样转发交易数组，结果不做修改
func (b *Broadcaster) PushBatch(ctx context.Context, trxs json.RawMessage) (json.RawMessage, error) {
	out, err := b.node.PushTransactions(ctx, trxs)
	if err != nil {
		return nil, err
	}
	b.log.Debug("transactions pushed", zap.Int("bytes", len(trxs)))
	return out, nil
}

package service

import (
	"context"
	"encoding/json"
	"time"

	"evtc/internal/service/assembler"
	"evtc/internal/service/broadcaster"
	"evtc/internal/service/chainstate"
	"evtc/internal/service/mq"
	"evtc/internal/service/signer"
	"evtc/pkg/chain/types"
	"evtc/pkg/config"
	"evtc/pkg/logger"

	"go.uber.org/zap"
)

// Options 单条交易的组装/签名/广播开关
type Options struct {
	Expiration    time.Duration
	RefBlock      string
	SkipSign      bool
	DontBroadcast bool
	Queue         bool
	Compression   types.Compression
}

// OptionsFromConfig 配置文件中的默认值，命令行参数在此基础上覆盖
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	c, err := types.ParseCompression(cfg.Tx.Compression)
	if err != nil {
		return Options{}, err
	}
	return Options{Expiration: cfg.Tx.Expiration, Compression: c}, nil
}

func (o Options) mode() broadcaster.Mode {
	switch {
	case o.DontBroadcast:
		return broadcaster.ModeReturn
	case o.Queue:
		return broadcaster.ModeQueue
	}
	return broadcaster.ModePush
}

// TransactionService 组装 -> 签名 -> 广播，每一步阻塞完成后才进入下一步
type TransactionService struct {
	assembler   *assembler.Assembler
	signer      *signer.Signer
	broadcaster *broadcaster.Broadcaster
	log         *zap.Logger
}

// NewTransactionService producer 为 nil 时不支持队列模式
func NewTransactionService(cfg *config.Config, node NodeAPI, wallet WalletAPI, producer mq.Producer, log *zap.Logger) *TransactionService {
	log = logger.Or(log)
	return &TransactionService{
		assembler:   assembler.New(chainstate.NewOracle(node, log), log),
		signer:      signer.New(wallet, node, log),
		broadcaster: broadcaster.New(node, producer, cfg.MQ.Topic, cfg.Node.URL, log),
		log:         log,
	}
}

// Push 对 actions 执行完整流水线
func (s *TransactionService) Push(ctx context.Context, opts Options, actions ...types.Action) (*broadcaster.Result, error) {
	u, err := s.assembler.Assemble(ctx, actions, assembler.Options{
		Expiration: opts.Expiration,
		RefBlock:   opts.RefBlock,
	})
	if err != nil {
		return nil, err
	}

	st := types.NewSignedTransaction(u.Trx)
	if !opts.SkipSign {
		if st, err = s.signer.Sign(ctx, u); err != nil {
			return nil, err
		}
	} else {
		s.log.Debug("signing skipped")
	}

	return s.broadcaster.Broadcast(ctx, st, opts.mode(), opts.Compression)
}

// PushSigned 提交已构造好的交易，不再组装和签名
func (s *TransactionService) PushSigned(ctx context.Context, opts Options, st *types.SignedTransaction) (*broadcaster.Result, error) {
	return s.broadcaster.Broadcast(ctx, st, opts.mode(), opts.Compression)
}

// PushBatch 原样转发交易数组
func (s *TransactionService) PushBatch(ctx context.Context, trxs json.RawMessage) (json.RawMessage, error) {
	return s.broadcaster.PushBatch(ctx, trxs)
}

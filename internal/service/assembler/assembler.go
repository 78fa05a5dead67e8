package assembler

import (
	"context"
	"time"

	"evtc/internal/service/chainstate"
	"evtc/pkg/chain/types"
	"evtc/pkg/logger"

	"go.uber.org/zap"
)

const DefaultExpiration = 30 * time.Second

// Options 组装参数；RefBlock 为空时锚定最新不可逆块
type Options struct {
	Expiration time.Duration
	RefBlock   string
}

// Unsigned 组装结果：未签名交易及其绑定的链上下文
type Unsigned struct {
	Trx      *types.Transaction
	ChainID  types.ChainID
	RefBlock types.BlockID
}

type Assembler struct {
	oracle *chainstate.Oracle
	log    *zap.Logger
}

func New(oracle *chainstate.Oracle, log *zap.Logger) *Assembler {
	return &Assembler{oracle: oracle, log: logger.Or(log)}
}

// Assemble 查询链状态，设置过期时间和 TAPOS 引用
func (a *Assembler) Assemble(ctx context.Context, actions []types.Action, opts Options) (*Unsigned, error) {
	info, err := a.oracle.Info(ctx)
	if err != nil {
		return nil, err
	}

	block, err := a.oracle.ReferenceBlock(ctx, info, opts.RefBlock)
	if err != nil {
		return nil, err
	}

	exp := opts.Expiration
	if exp <= 0 {
		exp = DefaultExpiration
	}

	trx := types.NewTransaction(actions...)
	trx.SetExpiration(info.HeadBlockTime.Time, exp)
	trx.SetReferenceBlock(block.ID)

	a.log.Debug("assembled transaction",
		zap.Int("actions", len(actions)),
		zap.Stringer("expiration", trx.Expiration),
		zap.Uint16("ref_block_num", trx.RefBlockNum),
		zap.Uint32("ref_block_prefix", trx.RefBlockPrefix))

	return &Unsigned{Trx: trx, ChainID: info.ChainID, RefBlock: block.ID}, nil
}

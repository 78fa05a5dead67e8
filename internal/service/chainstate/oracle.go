package chainstate

import (
	"context"
	"errors"
	"strconv"

	"evtc/pkg/chain/types"
	"evtc/pkg/errno"
	"evtc/pkg/logger"

	"go.uber.org/zap"
)

// ChainAPI 节点的只读链状态接口
type ChainAPI interface {
	GetInfo(ctx context.Context) (*types.InfoResult, error)
	GetBlock(ctx context.Context, numOrID string) (*types.BlockResult, error)
}

// Oracle 每次都实时查询节点，不做缓存
type Oracle struct {
	node ChainAPI
	log  *zap.Logger
}

func NewOracle(node ChainAPI, log *zap.Logger) *Oracle {
	return &Oracle{node: node, log: logger.Or(log)}
}

// Info 当前头块时间、头块 id 与不可逆块高度
func (o *Oracle) Info(ctx context.Context) (*types.InfoResult, error) {
	info, err := o.node.GetInfo(ctx)
	if err != nil {
		return nil, err
	}
	o.log.Debug("chain info",
		zap.Uint32("head", info.HeadBlockNum),
		zap.Uint32("lib", info.LastIrreversibleBlockNum),
		zap.Time("head_time", info.HeadBlockTime.Time))
	return info, nil
}

// ReferenceBlock 解析 TAPOS 锚点：ref 为空时使用最新不可逆块。
// 节点不认识该区块时返回 ErrInvalidRefBlock，连接错误原样返回。
func (o *Oracle) ReferenceBlock(ctx context.Context, info *types.InfoResult, ref string) (*types.BlockResult, error) {
	if ref == "" {
		ref = strconv.FormatUint(uint64(info.LastIrreversibleBlockNum), 10)
	}

	block, err := o.node.GetBlock(ctx, ref)
	if err != nil {
		if errors.Is(err, errno.ErrConnection) {
			return nil, err
		}
		return nil, errno.ErrInvalidRefBlock.Wrap(err, "%s", ref)
	}
	if block.ID.IsZero() {
		return nil, errno.ErrInvalidRefBlock.New("%s", ref)
	}

	o.log.Debug("reference block", zap.String("ref", ref), zap.Uint32("num", block.ID.Num()), zap.Stringer("id", block.ID))
	return block, nil
}

package client

import (
	"context"
	"encoding/json"
	"time"

	"evtc/pkg/chain/types"
	"evtc/pkg/keys"

	"go.uber.org/zap"
)

// NodeClient 账本节点 (evtd) 客户端
type NodeClient struct {
	c *httpClient
}

func NewNodeClient(url string, timeout time.Duration, log *zap.Logger) *NodeClient {
	return &NodeClient{c: newHTTPClient(ServiceNode, url, timeout, log)}
}

func (n *NodeClient) URL() string {
	return n.c.baseURL
}

func (n *NodeClient) GetInfo(ctx context.Context) (*types.InfoResult, error) {
	var info types.InfoResult
	if err := n.c.call(ctx, types.PathGetInfo, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetBlock 按区块号或区块 id 查询
func (n *NodeClient) GetBlock(ctx context.Context, numOrID string) (*types.BlockResult, error) {
	var block types.BlockResult
	if err := n.c.call(ctx, types.PathGetBlock, types.GetBlockRequest{BlockNumOrID: numOrID}, &block); err != nil {
		return nil, err
	}
	return &block, nil
}

func (n *NodeClient) GetRequiredKeys(ctx context.Context, trx *types.Transaction, available []keys.PublicKey, chainID types.ChainID) ([]keys.PublicKey, error) {
	req := types.RequiredKeysRequest{Transaction: *trx, AvailableKeys: available, ChainID: chainID}
	var res types.RequiredKeysResult
	if err := n.c.call(ctx, types.PathGetRequiredKeys, req, &res); err != nil {
		return nil, err
	}
	return res.RequiredKeys, nil
}

func (n *NodeClient) PushTransaction(ctx context.Context, packed *types.PackedTransaction) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := n.c.call(ctx, types.PathPushTransaction, packed, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// PushTransactions 原样转发交易数组
func (n *NodeClient) PushTransactions(ctx context.Context, trxs json.RawMessage) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := n.c.call(ctx, types.PathPushTransactions, trxs, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Call 只读查询，返回原始响应
func (n *NodeClient) Call(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := n.c.call(ctx, path, body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

package client

import (
	"context"
	"encoding/json"
	"time"

	"evtc/pkg/chain/types"
	"evtc/pkg/keys"

	"go.uber.org/zap"
)

// WalletClient 钱包服务 (evtwd) 客户端
type WalletClient struct {
	c *httpClient
}

func NewWalletClient(url string, timeout time.Duration, log *zap.Logger) *WalletClient {
	return &WalletClient{c: newHTTPClient(ServiceWallet, url, timeout, log)}
}

func (w *WalletClient) URL() string {
	return w.c.baseURL
}

// GetPublicKeys 所有已解锁钱包中的公钥
func (w *WalletClient) GetPublicKeys(ctx context.Context) ([]keys.PublicKey, error) {
	var out []keys.PublicKey
	if err := w.c.call(ctx, types.PathWalletGetPublicKeys, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (w *WalletClient) SignTransaction(ctx context.Context, st *types.SignedTransaction, required []keys.PublicKey, chainID types.ChainID) (*types.SignedTransaction, error) {
	req := types.SignTransactionRequest{Transaction: *st, Keys: required, ChainID: chainID}
	var signed types.SignedTransaction
	if err := w.c.call(ctx, types.PathWalletSignTransaction, req, &signed); err != nil {
		return nil, err
	}
	return &signed, nil
}

// Call 钱包管理类接口，返回原始响应
func (w *WalletClient) Call(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := w.c.call(ctx, path, body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

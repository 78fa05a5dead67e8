package service

import (
	"context"
	"encoding/json"

	"evtc/pkg/chain/types"
	"evtc/pkg/keys"
)

//go:generate mockgen -destination=mocks/mock_api.go -package=mocks evtc/internal/service NodeAPI,WalletAPI

// NodeAPI 交易流水线用到的账本节点接口
type NodeAPI interface {
	GetInfo(ctx context.Context) (*types.InfoResult, error)
	GetBlock(ctx context.Context, numOrID string) (*types.BlockResult, error)
	// GetRequiredKeys 从 available 中选出满足交易全部授权所需的公钥
	GetRequiredKeys(ctx context.Context, trx *types.Transaction, available []keys.PublicKey, chainID types.ChainID) ([]keys.PublicKey, error)
	PushTransaction(ctx context.Context, packed *types.PackedTransaction) (json.RawMessage, error)
	PushTransactions(ctx context.Context, trxs json.RawMessage) (json.RawMessage, error)
}

// WalletAPI 钱包只负责列出公钥与签名
type WalletAPI interface {
	GetPublicKeys(ctx context.Context) ([]keys.PublicKey, error)
	SignTransaction(ctx context.Context, st *types.SignedTransaction, required []keys.PublicKey, chainID types.ChainID) (*types.SignedTransaction, error)
}

package signer

import (
	"context"

	"evtc/internal/service/assembler"
	"evtc/pkg/chain/types"
	"evtc/pkg/errno"
	"evtc/pkg/keys"
	"evtc/pkg/logger"

	"go.uber.org/zap"
)

// KeyLister 钱包侧：列出已解锁的公钥并签名
type KeyLister interface {
	GetPublicKeys(ctx context.Context) ([]keys.PublicKey, error)
	SignTransaction(ctx context.Context, st *types.SignedTransaction, required []keys.PublicKey, chainID types.ChainID) (*types.SignedTransaction, error)
}

// RequiredKeysAPI 节点侧：计算满足授权所需的公钥
type RequiredKeysAPI interface {
	GetRequiredKeys(ctx context.Context, trx *types.Transaction, available []keys.PublicKey, chainID types.ChainID) ([]keys.PublicKey, error)
}

// AvailableKeys 第一跳：钱包中全部已解锁公钥
type AvailableKeys struct {
	Keys []keys.PublicKey
}

func (a AvailableKeys) Contains(pk keys.PublicKey) bool {
	for _, k := range a.Keys {
		if k == pk {
			return true
		}
	}
	return false
}

// RequiredKeys 第二跳：节点选出的公钥子集，Digest 为计算时交易的签名摘要
type RequiredKeys struct {
	Keys   []keys.PublicKey
	Digest [32]byte
}

type Signer struct {
	wallet KeyLister
	node   RequiredKeysAPI
	log    *zap.Logger
}

func New(wallet KeyLister, node RequiredKeysAPI, log *zap.Logger) *Signer {
	return &Signer{wallet: wallet, node: node, log: logger.Or(log)}
}

// Sign 依次执行 钱包公钥 -> 所需公钥 -> 钱包签名，最后校验签名者
func (s *Signer) Sign(ctx context.Context, u *assembler.Unsigned) (*types.SignedTransaction, error) {
	avail, err := s.AvailableKeys(ctx)
	if err != nil {
		return nil, err
	}
	required, err := s.RequiredKeys(ctx, u, avail)
	if err != nil {
		return nil, err
	}
	return s.SignWith(ctx, u, required)
}

func (s *Signer) AvailableKeys(ctx context.Context) (AvailableKeys, error) {
	ks, err := s.wallet.GetPublicKeys(ctx)
	if err != nil {
		return AvailableKeys{}, err
	}
	s.log.Debug("wallet keys", zap.Int("count", len(ks)))
	return AvailableKeys{Keys: ks}, nil
}

// RequiredKeys 节点返回的每个公钥都必须来自 avail
func (s *Signer) RequiredKeys(ctx context.Context, u *assembler.Unsigned, avail AvailableKeys) (RequiredKeys, error) {
	digest, err := u.Trx.SigDigest(u.ChainID)
	if err != nil {
		return RequiredKeys{}, errno.ErrTransactionFormat.Wrap(err, "encode transaction")
	}

	ks, err := s.node.GetRequiredKeys(ctx, u.Trx, avail.Keys, u.ChainID)
	if err != nil {
		return RequiredKeys{}, err
	}
	for _, k := range ks {
		if !avail.Contains(k) {
			return RequiredKeys{}, errno.ErrStaleKeys.New("required key %s is not unlocked in the wallet", k)
		}
	}

	s.log.Debug("required keys", zap.Int("count", len(ks)))
	return RequiredKeys{Keys: ks, Digest: digest}, nil
}

// SignWith 第三跳：让钱包对 required 中的公钥签名
func (s *Signer) SignWith(ctx context.Context, u *assembler.Unsigned, required RequiredKeys) (*types.SignedTransaction, error) {
	st := types.NewSignedTransaction(u.Trx)
	signed, err := s.wallet.SignTransaction(ctx, st, required.Keys, u.ChainID)
	if err != nil {
		return nil, err
	}
	if err := VerifyRequiredKeys(signed, u.ChainID, required); err != nil {
		return nil, err
	}
	return signed, nil
}

// VerifyRequiredKeys 签名后的交易摘要必须与计算所需公钥时一致，且签名者集合等于 required
func VerifyRequiredKeys(signed *types.SignedTransaction, chainID types.ChainID, required RequiredKeys) error {
	digest, err := signed.SigDigest(chainID)
	if err != nil {
		return errno.ErrTransactionFormat.Wrap(err, "encode signed transaction")
	}
	if digest != required.Digest {
		return errno.ErrStaleKeys.New("wallet returned a different transaction than the one keys were computed for")
	}

	signers, err := signed.SignatureKeys(chainID)
	if err != nil {
		return errno.ErrStaleKeys.Wrap(err, "recover signature keys")
	}

	want := make(map[keys.PublicKey]struct{}, len(required.Keys))
	for _, k := range required.Keys {
		want[k] = struct{}{}
	}
	got := make(map[keys.PublicKey]struct{}, len(signers))
	for _, k := range signers {
		if _, ok := want[k]; !ok {
			return errno.ErrStaleKeys.New("unexpected signature by %s", k)
		}
		got[k] = struct{}{}
	}
	for k := range want {
		if _, ok := got[k]; !ok {
			return errno.ErrStaleKeys.New("missing signature for required key %s", k)
		}
	}
	return nil
}

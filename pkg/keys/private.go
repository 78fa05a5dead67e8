package keys

import (
	"strings"

	"evtc/pkg/errno"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// PrivateKey secp256k1 私钥，文本形式为 WIF
type PrivateKey struct {
	key *btcec.PrivateKey
}

// GeneratePrivateKey 随机生成一把新私钥
func GeneratePrivateKey() (*PrivateKey, error) {
	k, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return &PrivateKey{key: k}, nil
}

// ParsePrivateKey 解析 WIF 格式私钥
func ParsePrivateKey(wif string) (*PrivateKey, error) {
	decoded, err := btcutil.DecodeWIF(strings.TrimSpace(wif))
	if err != nil {
		return nil, errno.ErrInvalidKey.Wrap(err, "private key")
	}
	return &PrivateKey{key: decoded.PrivKey}, nil
}

// String 返回 WIF (主网前缀，未压缩标记)
func (k *PrivateKey) String() string {
	wif, err := btcutil.NewWIF(k.key, &chaincfg.MainNetParams, false)
	if err != nil {
		return ""
	}
	return wif.String()
}

func (k *PrivateKey) PublicKey() PublicKey {
	return FromBTCEC(k.key.PubKey())
}

// Sign 对 32 字节摘要做可恢复签名
func (k *PrivateKey) Sign(digest [32]byte) (Signature, error) {
	var sig Signature
	compact := ecdsa.SignCompact(k.key, digest[:], true)
	copy(sig[:], compact)
	return sig, nil
}

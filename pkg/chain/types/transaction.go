package types

import (
	"time"

	"evtc/pkg/crypto_util"
	"evtc/pkg/keys"

	"github.com/ethereum/go-ethereum/rlp"
)

// Extension 预留的交易扩展
type Extension struct {
	Type uint16 `json:"type"`
	Data Bytes  `json:"data"`
}

// Transaction 未签名交易：过期时间 + TAPOS 引用 + 动作列表
type Transaction struct {
	Expiration     TimePointSec `json:"expiration"`
	RefBlockNum    uint16       `json:"ref_block_num"`
	RefBlockPrefix uint32       `json:"ref_block_prefix"`
	Actions        []Action     `json:"actions"`
	Extensions     []Extension  `json:"transaction_extensions"`
}

func NewTransaction(actions ...Action) *Transaction {
	return &Transaction{
		Actions:    actions,
		Extensions: []Extension{},
	}
}

// SetExpiration expiration = base + d，按秒截断
func (t *Transaction) SetExpiration(base time.Time, d time.Duration) {
	t.Expiration = NewTimePointSec(base.Add(d))
}

// SetReferenceBlock 以区块 id 作为 TAPOS 锚点
func (t *Transaction) SetReferenceBlock(id BlockID) {
	t.RefBlockNum = uint16(id.Num())
	t.RefBlockPrefix = id.Prefix()
}

// ReferencesBlock 判断交易是否锚定在该区块上
func (t *Transaction) ReferencesBlock(id BlockID) bool {
	return t.RefBlockNum == uint16(id.Num()) && t.RefBlockPrefix == id.Prefix()
}

// Bytes 交易的二进制编码
func (t *Transaction) Bytes() ([]byte, error) {
	return rlp.EncodeToBytes(t)
}

// ID sha256(encode(trx))
func (t *Transaction) ID() (TransactionID, error) {
	data, err := t.Bytes()
	if err != nil {
		return TransactionID{}, err
	}
	return TransactionID(crypto_util.SHA256(data)), nil
}

// SigDigest 签名摘要 sha256(chain_id || encode(trx))
func (t *Transaction) SigDigest(chainID ChainID) ([32]byte, error) {
	data, err := t.Bytes()
	if err != nil {
		return [32]byte{}, err
	}
	return crypto_util.SHA256(chainID[:], data), nil
}

// SignedTransaction 交易 + 签名
type SignedTransaction struct {
	Transaction
	Signatures []keys.Signature `json:"signatures"`
}

func NewSignedTransaction(trx *Transaction) *SignedTransaction {
	return &SignedTransaction{Transaction: *trx, Signatures: []keys.Signature{}}
}

// Sign 用本地私钥追加签名
func (st *SignedTransaction) Sign(priv *keys.PrivateKey, chainID ChainID) error {
	digest, err := st.SigDigest(chainID)
	if err != nil {
		return err
	}
	sig, err := priv.Sign(digest)
	if err != nil {
		return err
	}
	st.Signatures = append(st.Signatures, sig)
	return nil
}

// SignatureKeys 从签名恢复出签名者公钥，顺序与 Signatures 一致
func (st *SignedTransaction) SignatureKeys(chainID ChainID) ([]keys.PublicKey, error) {
	digest, err := st.SigDigest(chainID)
	if err != nil {
		return nil, err
	}
	out := make([]keys.PublicKey, 0, len(st.Signatures))
	for _, sig := range st.Signatures {
		pk, err := sig.Recover(digest)
		if err != nil {
			return nil, err
		}
		out = append(out, pk)
	}
	return out, nil
}

package types

import (
	"bytes"
	"fmt"
	"io"

	"evtc/pkg/errno"
	"evtc/pkg/keys"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/klauspost/compress/zlib"
)

// Compression packed_trx 的压缩方式
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZlib Compression = "zlib"
)

func ParseCompression(s string) (Compression, error) {
	switch Compression(s) {
	case "", CompressionNone:
		return CompressionNone, nil
	case CompressionZlib:
		return CompressionZlib, nil
	}
	return "", errno.ErrParse.New("unknown compression %q (want none or zlib)", s)
}

// PackedTransaction 发往节点的线上格式
type PackedTransaction struct {
	Signatures  []keys.Signature `json:"signatures"`
	Compression Compression      `json:"compression"`
	PackedTrx   Bytes            `json:"packed_trx"`
}

// Pack 编码并按需压缩交易体，签名保持原样
func Pack(st *SignedTransaction, c Compression) (*PackedTransaction, error) {
	data, err := st.Transaction.Bytes()
	if err != nil {
		return nil, err
	}

	switch c {
	case "", CompressionNone:
		c = CompressionNone
	case CompressionZlib:
		var buf bytes.Buffer
		w := zlib.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		data = buf.Bytes()
	default:
		return nil, fmt.Errorf("unknown compression %q", c)
	}

	sigs := st.Signatures
	if sigs == nil {
		sigs = []keys.Signature{}
	}
	return &PackedTransaction{Signatures: sigs, Compression: c, PackedTrx: data}, nil
}

// Unpack 还原为带签名的交易
func (p *PackedTransaction) Unpack() (*SignedTransaction, error) {
	data := []byte(p.PackedTrx)

	switch p.Compression {
	case "", CompressionNone:
	case CompressionZlib:
		r, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errno.ErrTransactionFormat.Wrap(err, "zlib")
		}
		defer r.Close()
		if data, err = io.ReadAll(r); err != nil {
			return nil, errno.ErrTransactionFormat.Wrap(err, "zlib")
		}
	default:
		return nil, errno.ErrTransactionFormat.New("unknown compression %q", p.Compression)
	}

	var trx Transaction
	if err := rlp.DecodeBytes(data, &trx); err != nil {
		return nil, errno.ErrTransactionFormat.Wrap(err, "packed_trx")
	}
	if trx.Extensions == nil {
		trx.Extensions = []Extension{}
	}
	return &SignedTransaction{Transaction: trx, Signatures: p.Signatures}, nil
}

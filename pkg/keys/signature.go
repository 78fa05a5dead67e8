package keys

import (
	"bytes"
	"strings"

	"evtc/pkg/crypto_util"
	"evtc/pkg/errno"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil/base58"
)

const (
	SignaturePrefix = "SIG_K1_"
	SignatureSize   = 65
)

// Signature 65 字节可恢复签名 (recovery id + r + s)
type Signature [SignatureSize]byte

func ParseSignature(s string) (Signature, error) {
	var sig Signature
	if !strings.HasPrefix(s, SignaturePrefix) {
		return sig, errno.ErrInvalidKey.New("signature %q must start with %s", s, SignaturePrefix)
	}
	raw := base58.Decode(s[len(SignaturePrefix):])
	if len(raw) != SignatureSize+crypto_util.ChecksumSize {
		return sig, errno.ErrInvalidKey.New("signature %q has wrong length", s)
	}
	data, sum := raw[:SignatureSize], raw[SignatureSize:]
	if !bytes.Equal(crypto_util.Checksum(data, "K1"), sum) {
		return sig, errno.ErrInvalidKey.New("signature %q checksum mismatch", s)
	}
	copy(sig[:], data)
	return sig, nil
}

func (s Signature) String() string {
	buf := make([]byte, 0, SignatureSize+crypto_util.ChecksumSize)
	buf = append(buf, s[:]...)
	buf = append(buf, crypto_util.Checksum(s[:], "K1")...)
	return SignaturePrefix + base58.Encode(buf)
}

// Recover 从签名和摘要恢复出签名公钥
func (s Signature) Recover(digest [32]byte) (PublicKey, error) {
	pub, _, err := ecdsa.RecoverCompact(s[:], digest[:])
	if err != nil {
		return PublicKey{}, errno.ErrInvalidKey.Wrap(err, "recover signature")
	}
	return FromBTCEC(pub), nil
}

func (s Signature) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Signature) UnmarshalText(text []byte) error {
	parsed, err := ParseSignature(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

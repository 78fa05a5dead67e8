package keys

import (
	"bytes"
	"fmt"
	"strings"

	"evtc/pkg/crypto_util"
	"evtc/pkg/errno"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/base58"
)

// PublicKeyPrefix EVT 公钥字符串前缀
const PublicKeyPrefix = "EVT"

// PublicKeySize 压缩公钥字节数
const PublicKeySize = btcec.PubKeyBytesLenCompressed

// ZeroPublicKeyString 零公钥的字符串形式，用于指向 owner group
var ZeroPublicKeyString = PublicKeyPrefix + strings.Repeat("0", 50)

// PublicKey secp256k1 压缩公钥
type PublicKey [PublicKeySize]byte

// ParsePublicKey 解析 "EVT" + base58(key || ripemd160(key)[:4])。
// 空串与 ZeroPublicKeyString 都解析为零公钥。
func ParsePublicKey(s string) (PublicKey, error) {
	var pk PublicKey
	s = strings.TrimSpace(s)
	if s == "" || s == ZeroPublicKeyString {
		return pk, nil
	}
	if !strings.HasPrefix(s, PublicKeyPrefix) {
		return pk, errno.ErrInvalidKey.New("public key %q must start with %s", s, PublicKeyPrefix)
	}

	raw := base58.Decode(s[len(PublicKeyPrefix):])
	if len(raw) != PublicKeySize+crypto_util.ChecksumSize {
		return pk, errno.ErrInvalidKey.New("public key %q has wrong length", s)
	}
	data, sum := raw[:PublicKeySize], raw[PublicKeySize:]
	if !bytes.Equal(crypto_util.Checksum(data, ""), sum) {
		return pk, errno.ErrInvalidKey.New("public key %q checksum mismatch", s)
	}
	if _, err := btcec.ParsePubKey(data); err != nil {
		return pk, errno.ErrInvalidKey.Wrap(err, "public key %q", s)
	}

	copy(pk[:], data)
	return pk, nil
}

// MustParsePublicKey 仅用于常量和测试
func MustParsePublicKey(s string) PublicKey {
	pk, err := ParsePublicKey(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// FromBTCEC 转换 btcec 公钥
func FromBTCEC(pub *btcec.PublicKey) PublicKey {
	var pk PublicKey
	copy(pk[:], pub.SerializeCompressed())
	return pk
}

func (pk PublicKey) IsZero() bool {
	return pk == PublicKey{}
}

// BTCEC 返回可用于验签的 btcec 公钥
func (pk PublicKey) BTCEC() (*btcec.PublicKey, error) {
	if pk.IsZero() {
		return nil, errno.ErrInvalidKey.New("zero public key")
	}
	return btcec.ParsePubKey(pk[:])
}

func (pk PublicKey) String() string {
	if pk.IsZero() {
		return ZeroPublicKeyString
	}
	buf := make([]byte, 0, PublicKeySize+crypto_util.ChecksumSize)
	buf = append(buf, pk[:]...)
	buf = append(buf, crypto_util.Checksum(pk[:], "")...)
	return PublicKeyPrefix + base58.Encode(buf)
}

func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

func (pk *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}

// ParsePublicKeys 批量解析，错误信息中带上出错的位置
func ParsePublicKeys(ss []string) ([]PublicKey, error) {
	out := make([]PublicKey, 0, len(ss))
	for i, s := range ss {
		pk, err := ParsePublicKey(s)
		if err != nil {
			return nil, fmt.Errorf("key #%d: %w", i, err)
		}
		out = append(out, pk)
	}
	return out, nil
}

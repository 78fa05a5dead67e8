package crypto_util

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // EVT 的密钥与签名格式固定使用 RIPEMD-160 校验和
)

// ChecksumSize 密钥/签名字符串末尾校验和的字节数
const ChecksumSize = 4

// SHA256 计算输入的 SHA256 哈希值。
func SHA256(data ...[]byte) [32]byte {
	h := sha256.New()
	for _, d := range data {
		h.Write(d)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// RIPEMD160 计算输入的 RIPEMD-160 哈希值。
func RIPEMD160(data ...[]byte) []byte {
	h := ripemd160.New()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// Checksum 返回 RIPEMD-160(data || suffix) 的前 4 字节。
// 公钥不带 suffix，K1 签名使用 "K1"。
func Checksum(data []byte, suffix string) []byte {
	return RIPEMD160(data, []byte(suffix))[:ChecksumSize]
}

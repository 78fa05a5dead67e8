package types

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Bytes 以不带 0x 前缀的 hex 字符串序列化的字节串
type Bytes []byte

func (b Bytes) MarshalText() ([]byte, error) {
	return []byte(common.Bytes2Hex(b)), nil
}

func (b *Bytes) UnmarshalText(text []byte) error {
	s := string(text)
	if !isHex(strings.TrimPrefix(s, "0x")) {
		return fmt.Errorf("invalid hex string %q", s)
	}
	*b = common.FromHex(s)
	return nil
}

// Checksum256 32 字节哈希 (chain id, transaction id)
type Checksum256 [32]byte

type (
	ChainID       = Checksum256
	TransactionID = Checksum256
)

func ParseChecksum256(s string) (Checksum256, error) {
	var c Checksum256
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 64 || !isHex(s) {
		return c, fmt.Errorf("invalid checksum256 %q", s)
	}
	copy(c[:], common.Hex2Bytes(s))
	return c, nil
}

func (c Checksum256) IsZero() bool {
	return c == Checksum256{}
}

func (c Checksum256) String() string {
	return common.Bytes2Hex(c[:])
}

func (c Checksum256) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Checksum256) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = Checksum256{}
		return nil
	}
	parsed, err := ParseChecksum256(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// BlockID 区块 id：前 4 字节为大端区块高度，其余为区块哈希
type BlockID [32]byte

// MakeBlockID 用区块高度覆盖哈希的前 4 字节
func MakeBlockID(num uint32, hash [32]byte) BlockID {
	id := BlockID(hash)
	binary.BigEndian.PutUint32(id[:4], num)
	return id
}

func ParseBlockID(s string) (BlockID, error) {
	c, err := ParseChecksum256(s)
	if err != nil {
		return BlockID{}, fmt.Errorf("invalid block id %q", s)
	}
	return BlockID(c), nil
}

// Num 区块高度
func (id BlockID) Num() uint32 {
	return binary.BigEndian.Uint32(id[:4])
}

// Prefix TAPOS 使用的区块前缀
func (id BlockID) Prefix() uint32 {
	return binary.LittleEndian.Uint32(id[8:12])
}

func (id BlockID) IsZero() bool {
	return id == BlockID{}
}

func (id BlockID) String() string {
	return common.Bytes2Hex(id[:])
}

func (id BlockID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *BlockID) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*id = BlockID{}
		return nil
	}
	parsed, err := ParseBlockID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// BlockRef 用户给出的区块号或区块 id
type BlockRef string

// IsNum 判断是否为纯数字区块号
func (r BlockRef) IsNum() bool {
	_, err := strconv.ParseUint(string(r), 10, 32)
	return err == nil
}

func isHex(s string) bool {
	if len(s)%2 != 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

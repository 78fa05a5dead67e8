package keys

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
)

// DefaultPath EVT 在 SLIP-44 中的币种编号为 194
const DefaultPath = "m/44'/194'/0'/0/0"

var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// NewMnemonic 生成一个新的随机助记词 (BIP-39)。
// bitSize: 熵的位数，通常为 128 (12个单词) 或 256 (24个单词)。
func NewMnemonic(bitSize int) (string, error) {
	entropy, err := bip39.NewEntropy(bitSize)
	if err != nil {
		return "", fmt.Errorf("生成熵失败: %v", err)
	}
	return bip39.NewMnemonic(entropy)
}

// FromMnemonic 由助记词派生私钥，path 为空时使用 DefaultPath
func FromMnemonic(mnemonic, passphrase, path string) (*PrivateKey, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	seed := bip39.NewSeed(mnemonic, passphrase)

	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("生成主密钥失败: %v", err)
	}

	if path == "" {
		path = DefaultPath
	}
	child, err := derivePath(master, path)
	if err != nil {
		return nil, err
	}

	priv, err := child.ECPrivKey()
	if err != nil {
		return nil, err
	}
	return &PrivateKey{key: priv}, nil
}

// derivePath 解析路径并派生密钥
// 支持格式: m/44'/194'/0'/0/0 或 m/44h/194h/0h/0/0
func derivePath(key *hdkeychain.ExtendedKey, path string) (*hdkeychain.ExtendedKey, error) {
	path = strings.TrimPrefix(strings.TrimSpace(path), "m/")
	if path == "" || path == "m" {
		return key, nil
	}

	for _, segment := range strings.Split(path, "/") {
		hardened := strings.HasSuffix(segment, "'") || strings.HasSuffix(segment, "h")
		if hardened {
			segment = segment[:len(segment)-1]
		}

		val, err := strconv.ParseUint(segment, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("无效的路径段 '%s': %v", segment, err)
		}
		index := uint32(val)
		if hardened {
			index += hdkeychain.HardenedKeyStart
		}

		key, err = key.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("派生子密钥失败: %v", err)
		}
	}
	return key, nil
}

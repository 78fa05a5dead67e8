package kms

import (
	"errors"

	"evtc/pkg/keys"
)

// DefaultWallet 未指定名称时使用的钱包
const DefaultWallet = "default"

// KeyManager 钱包服务的密钥管理。
// 私钥只在已解锁的钱包内参与签名，锁定的钱包不暴露任何公钥。
type KeyManager interface {
	// Create 创建并打开一个新钱包，返回解锁密码（仅此一次）
	Create(name string) (string, error)
	Open(name string) error
	Lock(name string) error
	LockAll()
	Unlock(name, password string) error

	// ImportKey 向已解锁的钱包导入 WIF 私钥
	ImportKey(name, wif string) (keys.PublicKey, error)

	// List 已打开的钱包，已解锁的名称带 " *" 后缀
	List() []string
	// ListKeys 所有已解锁钱包中的私钥，公钥 -> WIF
	ListKeys() map[keys.PublicKey]string
	// PublicKeys 所有已解锁钱包中的公钥，按字符串排序
	PublicKeys() []keys.PublicKey

	// Sign 用 pub 对应的私钥签名 digest
	Sign(pub keys.PublicKey, digest [32]byte) (keys.Signature, error)
}

var (
	ErrWalletNotFound = errors.New("wallet not found")
	ErrWalletExists   = errors.New("wallet already exists")
	ErrWalletLocked   = errors.New("wallet is locked")
	ErrWrongPassword  = errors.New("invalid wallet password")
	ErrKeyNotFound    = errors.New("public key not found in unlocked wallets")
	ErrKeyExists      = errors.New("key already in wallet")
	ErrInvalidName    = errors.New("invalid wallet name")
)

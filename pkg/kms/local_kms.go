package kms

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"evtc/pkg/keys"

	"golang.org/x/crypto/bcrypt"
)

// PasswordPrefix 钱包密码前缀，后接一个随机 WIF
const PasswordPrefix = "PW"

var walletNameRe = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,64}$`)

// wallet 内部存储结构，只保存密码的 bcrypt 哈希
type wallet struct {
	passwordHash []byte
	opened       bool
	unlocked     bool
	keys         map[keys.PublicKey]*keys.PrivateKey
}

// LocalKMS 是 KeyManager 的内存实现，进程退出后钱包即丢失
type LocalKMS struct {
	mu      sync.RWMutex
	wallets map[string]*wallet
	cost    int
}

func NewLocalKMS() *LocalKMS {
	return &LocalKMS{
		wallets: make(map[string]*wallet),
		cost:    bcrypt.DefaultCost,
	}
}

func normalize(name string) (string, error) {
	if name == "" {
		name = DefaultWallet
	}
	if !walletNameRe.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name, nil
}

func (kms *LocalKMS) Create(name string) (string, error) {
	name, err := normalize(name)
	if err != nil {
		return "", err
	}

	seed, err := keys.GeneratePrivateKey()
	if err != nil {
		return "", err
	}
	password := PasswordPrefix + seed.String()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), kms.cost)
	if err != nil {
		return "", fmt.Errorf("hash wallet password: %w", err)
	}

	kms.mu.Lock()
	defer kms.mu.Unlock()

	if _, ok := kms.wallets[name]; ok {
		return "", fmt.Errorf("%w: %s", ErrWalletExists, name)
	}
	kms.wallets[name] = &wallet{
		passwordHash: hash,
		opened:       true,
		unlocked:     true,
		keys:         make(map[keys.PublicKey]*keys.PrivateKey),
	}
	return password, nil
}

func (kms *LocalKMS) get(name string) (*wallet, error) {
	name, err := normalize(name)
	if err != nil {
		return nil, err
	}
	w, ok := kms.wallets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWalletNotFound, name)
	}
	return w, nil
}

func (kms *LocalKMS) Open(name string) error {
	kms.mu.Lock()
	defer kms.mu.Unlock()

	w, err := kms.get(name)
	if err != nil {
		return err
	}
	w.opened = true
	return nil
}

func (kms *LocalKMS) Lock(name string) error {
	kms.mu.Lock()
	defer kms.mu.Unlock()

	w, err := kms.get(name)
	if err != nil {
		return err
	}
	w.unlocked = false
	return nil
}

func (kms *LocalKMS) LockAll() {
	kms.mu.Lock()
	defer kms.mu.Unlock()

	for _, w := range kms.wallets {
		w.unlocked = false
	}
}

func (kms *LocalKMS) Unlock(name, password string) error {
	kms.mu.Lock()
	defer kms.mu.Unlock()

	w, err := kms.get(name)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword(w.passwordHash, []byte(password)); err != nil {
		return ErrWrongPassword
	}
	w.opened = true
	w.unlocked = true
	return nil
}

func (kms *LocalKMS) ImportKey(name, wif string) (keys.PublicKey, error) {
	priv, err := keys.ParsePrivateKey(wif)
	if err != nil {
		return keys.PublicKey{}, err
	}

	kms.mu.Lock()
	defer kms.mu.Unlock()

	w, err := kms.get(name)
	if err != nil {
		return keys.PublicKey{}, err
	}
	if !w.unlocked {
		return keys.PublicKey{}, ErrWalletLocked
	}

	pub := priv.PublicKey()
	if _, ok := w.keys[pub]; ok {
		return pub, fmt.Errorf("%w: %s", ErrKeyExists, pub)
	}
	w.keys[pub] = priv
	return pub, nil
}

func (kms *LocalKMS) List() []string {
	kms.mu.RLock()
	defer kms.mu.RUnlock()

	out := make([]string, 0, len(kms.wallets))
	for name, w := range kms.wallets {
		if !w.opened {
			continue
		}
		if w.unlocked {
			name += " *"
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (kms *LocalKMS) ListKeys() map[keys.PublicKey]string {
	kms.mu.RLock()
	defer kms.mu.RUnlock()

	out := make(map[keys.PublicKey]string)
	for _, w := range kms.wallets {
		if !w.unlocked {
			continue
		}
		for pub, priv := range w.keys {
			out[pub] = priv.String()
		}
	}
	return out
}

func (kms *LocalKMS) PublicKeys() []keys.PublicKey {
	kms.mu.RLock()
	defer kms.mu.RUnlock()

	seen := make(map[keys.PublicKey]struct{})
	out := []keys.PublicKey{}
	for _, w := range kms.wallets {
		if !w.unlocked {
			continue
		}
		for pub := range w.keys {
			if _, ok := seen[pub]; ok {
				continue
			}
			seen[pub] = struct{}{}
			out = append(out, pub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func (kms *LocalKMS) Sign(pub keys.PublicKey, digest [32]byte) (keys.Signature, error) {
	kms.mu.RLock()
	defer kms.mu.RUnlock()

	for _, w := range kms.wallets {
		if !w.unlocked {
			continue
		}
		if priv, ok := w.keys[pub]; ok {
			return priv.Sign(digest)
		}
	}
	return keys.Signature{}, fmt.Errorf("%w: %s", ErrKeyNotFound, pub)
}

package kms

import (
	"errors"
	"strings"
	"testing"

	"evtc/pkg/crypto_util"
	"evtc/pkg/keys"

	"golang.org/x/crypto/bcrypt"
)

func newTestKMS() *LocalKMS {
	kms := NewLocalKMS()
	kms.cost = bcrypt.MinCost
	return kms
}

func TestLocalKMS_CreateUnlock(t *testing.T) {
	kms := newTestKMS()

	pw, err := kms.Create("")
	if err != nil {
		t.Fatalf("创建钱包失败: %v", err)
	}
	if !strings.HasPrefix(pw, PasswordPrefix) {
		t.Errorf("密码前缀错误: %s", pw)
	}

	if _, err := kms.Create(DefaultWallet); !errors.Is(err, ErrWalletExists) {
		t.Errorf("重复创建应失败, got %v", err)
	}

	if got := kms.List(); len(got) != 1 || got[0] != "default *" {
		t.Errorf("List 结果错误: %v", got)
	}

	kms.LockAll()
	if got := kms.List(); got[0] != "default" {
		t.Errorf("锁定后 List 结果错误: %v", got)
	}

	if err := kms.Unlock("default", "wrong"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("错误密码应失败, got %v", err)
	}
	if err := kms.Unlock("default", pw); err != nil {
		t.Errorf("解锁失败: %v", err)
	}

	if err := kms.Open("missing"); !errors.Is(err, ErrWalletNotFound) {
		t.Errorf("打开不存在的钱包应失败, got %v", err)
	}
}

func TestLocalKMS_SignOnlyWhenUnlocked(t *testing.T) {
	kms := newTestKMS()
	if _, err := kms.Create("w1"); err != nil {
		t.Fatal(err)
	}

	priv, err := keys.GeneratePrivateKey()
	if err != nil {
		t.Fatal(err)
	}
	pub, err := kms.ImportKey("w1", priv.String())
	if err != nil {
		t.Fatalf("导入私钥失败: %v", err)
	}
	if pub != priv.PublicKey() {
		t.Errorf("导入返回的公钥不匹配")
	}

	digest := crypto_util.SHA256([]byte("evt"))
	sig, err := kms.Sign(pub, digest)
	if err != nil {
		t.Fatalf("签名失败: %v", err)
	}
	recovered, err := sig.Recover(digest)
	if err != nil || recovered != pub {
		t.Errorf("签名恢复的公钥不匹配: %v", err)
	}

	if got := kms.PublicKeys(); len(got) != 1 || got[0] != pub {
		t.Errorf("PublicKeys 结果错误: %v", got)
	}
	if got := kms.ListKeys(); got[pub] != priv.String() {
		t.Errorf("ListKeys 结果错误")
	}

	if err := kms.Lock("w1"); err != nil {
		t.Fatal(err)
	}
	if got := kms.PublicKeys(); len(got) != 0 {
		t.Errorf("锁定的钱包不应暴露公钥: %v", got)
	}
	if _, err := kms.Sign(pub, digest); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("锁定后签名应失败, got %v", err)
	}
	if _, err := kms.ImportKey("w1", priv.String()); !errors.Is(err, ErrWalletLocked) {
		t.Errorf("锁定后导入应失败, got %v", err)
	}
}

func TestLocalKMS_InvalidName(t *testing.T) {
	if _, err := newTestKMS().Create("bad name/"); !errors.Is(err, ErrInvalidName) {
		t.Errorf("非法钱包名应失败, got %v", err)
	}
}

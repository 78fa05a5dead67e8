package devnet

import (
	"errors"

	"evtc/internal/handler/response"
	"evtc/pkg/chain/types"
	"evtc/pkg/keys"
	"evtc/pkg/kms"
	"evtc/pkg/logger"
	"evtc/pkg/monitor"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WalletHandler 钱包服务 (evtwd) 的 HTTP 接口
type WalletHandler struct {
	km  kms.KeyManager
	log *zap.Logger
}

func NewWalletHandler(km kms.KeyManager, log *zap.Logger) *WalletHandler {
	return &WalletHandler{km: km, log: logger.Or(log)}
}

func walletError(err error) error {
	switch {
	case errors.Is(err, kms.ErrWalletExists):
		return errWalletExists.Errorf("%v", err)
	case errors.Is(err, kms.ErrWalletNotFound), errors.Is(err, kms.ErrInvalidName):
		return errWalletNonexistent.Errorf("%v", err)
	case errors.Is(err, kms.ErrWalletLocked):
		return errWalletLocked.Errorf("%v", err)
	case errors.Is(err, kms.ErrWrongPassword):
		return errWalletPassword.Errorf("%v", err)
	case errors.Is(err, kms.ErrKeyNotFound):
		return errWalletMissingKey.Errorf("%v", err)
	case errors.Is(err, kms.ErrKeyExists):
		return errWalletKeyExists.Errorf("%v", err)
	}
	return errPrivateKey.Errorf("%v", err)
}

// pair 解析 [name, value] 形式的请求体
func pair(c *gin.Context) (string, string, bool) {
	var req []string
	if !bind(c, &req) {
		return "", "", false
	}
	if len(req) != 2 {
		response.Error(c, errParse.Errorf("expected [wallet_name, value], got %d items", len(req)))
		return "", "", false
	}
	return req[0], req[1], true
}

func (h *WalletHandler) Create(c *gin.Context) {
	var name string
	if !bind(c, &name) {
		return
	}
	pw, err := h.km.Create(name)
	if err != nil {
		response.Error(c, walletError(err))
		return
	}
	h.log.Info("wallet created", zap.String("name", name))
	response.Success(c, pw)
}

func (h *WalletHandler) Open(c *gin.Context) {
	var name string
	if !bind(c, &name) {
		return
	}
	if err := h.km.Open(name); err != nil {
		response.Error(c, walletError(err))
		return
	}
	response.Success(c, nil)
}

func (h *WalletHandler) Lock(c *gin.Context) {
	var name string
	if !bind(c, &name) {
		return
	}
	if err := h.km.Lock(name); err != nil {
		response.Error(c, walletError(err))
		return
	}
	response.Success(c, nil)
}

func (h *WalletHandler) LockAll(c *gin.Context) {
	h.km.LockAll()
	response.Success(c, nil)
}

func (h *WalletHandler) Unlock(c *gin.Context) {
	name, pw, ok := pair(c)
	if !ok {
		return
	}
	if err := h.km.Unlock(name, pw); err != nil {
		response.Error(c, walletError(err))
		return
	}
	response.Success(c, nil)
}

func (h *WalletHandler) ImportKey(c *gin.Context) {
	name, wif, ok := pair(c)
	if !ok {
		return
	}
	pub, err := h.km.ImportKey(name, wif)
	if err != nil {
		response.Error(c, walletError(err))
		return
	}
	h.log.Info("key imported", zap.String("wallet", name), zap.Stringer("pub", pub))
	response.Success(c, nil)
}

func (h *WalletHandler) List(c *gin.Context) {
	response.Success(c, h.km.List())
}

func (h *WalletHandler) ListKeys(c *gin.Context) {
	response.Success(c, h.km.ListKeys())
}

func (h *WalletHandler) GetPublicKeys(c *gin.Context) {
	response.Success(c, h.km.PublicKeys())
}

// SignTransaction 对 required 中的每个公钥追加一个签名
func (h *WalletHandler) SignTransaction(c *gin.Context) {
	var req types.SignTransactionRequest
	if !bind(c, &req) {
		return
	}

	st := req.Transaction
	digest, err := st.SigDigest(req.ChainID)
	if err != nil {
		response.Error(c, errParse.Errorf("%v", err))
		return
	}

	sigs := append([]keys.Signature{}, st.Signatures...)
	for _, pub := range req.Keys {
		sig, err := h.km.Sign(pub, digest)
		if err != nil {
			monitor.Chain.WalletSign("failed")
			response.Error(c, walletError(err))
			return
		}
		sigs = append(sigs, sig)
	}
	st.Signatures = sigs

	monitor.Chain.WalletSign("ok")
	response.Success(c, st)
}

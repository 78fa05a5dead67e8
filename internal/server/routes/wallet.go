package routes

import (
	"evtc/internal/devnet"
	"evtc/pkg/chain/types"

	"github.com/gin-gonic/gin"
)

func RegisterWalletRoutes(r gin.IRoutes, h *devnet.WalletHandler) {
	r.POST(types.PathWalletCreate, h.Create)
	r.POST(types.PathWalletOpen, h.Open)
	r.POST(types.PathWalletLock, h.Lock)
	r.POST(types.PathWalletLockAll, h.LockAll)
	r.POST(types.PathWalletUnlock, h.Unlock)
	r.POST(types.PathWalletImportKey, h.ImportKey)
	r.POST(types.PathWalletList, h.List)
	r.POST(types.PathWalletListKeys, h.ListKeys)
	r.POST(types.PathWalletGetPublicKeys, h.GetPublicKeys)
	r.POST(types.PathWalletSignTransaction, h.SignTransaction)
}

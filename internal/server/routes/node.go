package routes

import (
	"evtc/internal/devnet"
	"evtc/pkg/chain/types"

	"github.com/gin-gonic/gin"
)

// RegisterNodeRoutes 账本节点接口，均为 POST
func RegisterNodeRoutes(r gin.IRoutes, h *devnet.NodeHandler) {
	// chain
	r.POST(types.PathGetInfo, h.GetInfo)
	r.POST(types.PathGetBlock, h.GetBlock)
	r.POST(types.PathGetRequiredKeys, h.GetRequiredKeys)
	r.POST(types.PathPushTransaction, h.PushTransaction)
	r.POST(types.PathPushTransactions, h.PushTransactions)

	// evt
	r.POST(types.PathGetDomain, h.GetDomain)
	r.POST(types.PathGetToken, h.GetToken)
	r.POST(types.PathGetGroup, h.GetGroup)
	r.POST(types.PathGetAccount, h.GetAccount)

	// history
	r.POST(types.PathGetTransaction, h.GetTransaction)
	r.POST(types.PathGetTransactions, h.GetTransactions)

	// net
	r.POST(types.PathNetConnect, h.NetConnect)
	r.POST(types.PathNetDisconnect, h.NetDisconnect)
	r.POST(types.PathNetStatus, h.NetStatus)
	r.POST(types.PathNetConnections, h.NetConnections)
}

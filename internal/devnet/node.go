package devnet

import (
	"encoding/json"
	"strings"

	"evtc/internal/handler/response"
	"evtc/pkg/chain/types"

	"github.com/gin-gonic/gin"
)

// NodeHandler 账本节点 (evtd) 的 HTTP 接口
type NodeHandler struct {
	ledger *Ledger
}

func NewNodeHandler(l *Ledger) *NodeHandler {
	return &NodeHandler{ledger: l}
}

// bind 解析请求体，失败时写出 parse_error_exception
func bind(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		response.Error(c, errParse.Errorf("%v", err))
		return false
	}
	return true
}

func reply(c *gin.Context, data interface{}, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, data)
}

func (h *NodeHandler) GetInfo(c *gin.Context) {
	response.Success(c, h.ledger.Info())
}

// GetBlock block_num_or_id 可以是字符串或数字
func (h *NodeHandler) GetBlock(c *gin.Context) {
	var req struct {
		BlockNumOrID json.RawMessage `json:"block_num_or_id"`
	}
	if !bind(c, &req) {
		return
	}
	ref := strings.Trim(strings.TrimSpace(string(req.BlockNumOrID)), `"`)
	block, err := h.ledger.Block(ref)
	reply(c, block, err)
}

func (h *NodeHandler) GetRequiredKeys(c *gin.Context) {
	var req types.RequiredKeysRequest
	if !bind(c, &req) {
		return
	}
	required, err := h.ledger.RequiredKeys(&req.Transaction, req.AvailableKeys)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, types.RequiredKeysResult{RequiredKeys: required})
}

func (h *NodeHandler) PushTransaction(c *gin.Context) {
	var req types.PackedTransaction
	if !bind(c, &req) {
		return
	}
	res, err := h.ledger.Push(&req)
	reply(c, res, err)
}

func (h *NodeHandler) PushTransactions(c *gin.Context) {
	var req []types.PackedTransaction
	if !bind(c, &req) {
		return
	}
	response.Success(c, h.ledger.PushBatch(req))
}

func (h *NodeHandler) GetDomain(c *gin.Context) {
	var req types.GetDomainRequest
	if !bind(c, &req) {
		return
	}
	d, err := h.ledger.Domain(req.Name)
	reply(c, d, err)
}

func (h *NodeHandler) GetToken(c *gin.Context) {
	var req types.GetTokenRequest
	if !bind(c, &req) {
		return
	}
	t, err := h.ledger.Token(req.Domain, req.Name)
	reply(c, t, err)
}

func (h *NodeHandler) GetGroup(c *gin.Context) {
	var req types.GetGroupRequest
	if !bind(c, &req) {
		return
	}
	g, err := h.ledger.Group(req.ID)
	reply(c, g, err)
}

func (h *NodeHandler) GetAccount(c *gin.Context) {
	var req types.GetAccountRequest
	if !bind(c, &req) {
		return
	}
	a, err := h.ledger.Account(req.Name)
	reply(c, a, err)
}

func (h *NodeHandler) GetTransaction(c *gin.Context) {
	var req types.GetTransactionRequest
	if !bind(c, &req) {
		return
	}
	rec, err := h.ledger.Transaction(req.TransactionID)
	reply(c, rec, err)
}

func (h *NodeHandler) GetTransactions(c *gin.Context) {
	var req types.GetTransactionsRequest
	if !bind(c, &req) {
		return
	}
	if req.Skip < 0 || req.Num < 0 {
		response.Error(c, errParse.Errorf("skip_seq and num_seq must not be negative"))
		return
	}
	response.Success(c, h.ledger.Transactions(req.AccountName, req.Skip, req.Num))
}

func (h *NodeHandler) NetConnect(c *gin.Context) {
	var host string
	if !bind(c, &host) {
		return
	}
	response.Success(c, h.ledger.Connect(host))
}

func (h *NodeHandler) NetDisconnect(c *gin.Context) {
	var host string
	if !bind(c, &host) {
		return
	}
	response.Success(c, h.ledger.Disconnect(host))
}

// NetStatus 未知对端返回 null
func (h *NodeHandler) NetStatus(c *gin.Context) {
	var host string
	if !bind(c, &host) {
		return
	}
	if p := h.ledger.PeerStatus(host); p != nil {
		response.Success(c, p)
		return
	}
	c.JSON(200, nil)
}

func (h *NodeHandler) NetConnections(c *gin.Context) {
	response.Success(c, h.ledger.Peers())
}

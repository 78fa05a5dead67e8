package types

import (
	"encoding/json"
	"fmt"

	"evtc/pkg/keys"
)

// 节点 (evtd) 与钱包 (evtwd) 的 HTTP 请求/响应结构

type InfoResult struct {
	ServerVersion            string    `json:"server_version"`
	ChainID                  ChainID   `json:"chain_id"`
	EvtAPIVersion            string    `json:"evt_api_version"`
	HeadBlockNum             uint32    `json:"head_block_num"`
	LastIrreversibleBlockNum uint32    `json:"last_irreversible_block_num"`
	LastIrreversibleBlockID  BlockID   `json:"last_irreversible_block_id"`
	HeadBlockID              BlockID   `json:"head_block_id"`
	HeadBlockTime            TimePoint `json:"head_block_time"`
	HeadBlockProducer        string    `json:"head_block_producer"`
}

type GetBlockRequest struct {
	BlockNumOrID string `json:"block_num_or_id"`
}

type BlockResult struct {
	ID             BlockID         `json:"id"`
	BlockNum       uint32          `json:"block_num"`
	Timestamp      TimePoint       `json:"timestamp"`
	Previous       BlockID         `json:"previous"`
	Producer       string          `json:"producer"`
	RefBlockPrefix uint32          `json:"ref_block_prefix"`
	Transactions   []TransactionID `json:"transactions"`
}

type RequiredKeysRequest struct {
	Transaction   Transaction      `json:"transaction"`
	AvailableKeys []keys.PublicKey `json:"available_keys"`
	ChainID       ChainID          `json:"chain_id"`
}

type RequiredKeysResult struct {
	RequiredKeys []keys.PublicKey `json:"required_keys"`
}

type PushResult struct {
	TransactionID TransactionID   `json:"transaction_id"`
	Processed     json.RawMessage `json:"processed"`
}

type GetDomainRequest struct {
	Name Name128 `json:"name"`
}

type GetTokenRequest struct {
	Domain Name128 `json:"domain"`
	Name   Name128 `json:"name"`
}

type GetGroupRequest struct {
	ID string `json:"id"`
}

type GetAccountRequest struct {
	Name Name128 `json:"name"`
}

type GetTransactionRequest struct {
	TransactionID TransactionID `json:"transaction_id"`
}

// GetTransactionsRequest skip_seq 跳过最近的若干条，num_seq 为 0 时返回全部
type GetTransactionsRequest struct {
	AccountName Name128 `json:"account_name"`
	Skip        int     `json:"skip_seq,omitempty"`
	Num         int     `json:"num_seq,omitempty"`
}

// 查询结果

type DomainResult struct {
	Name      Name128        `json:"name"`
	Issuer    keys.PublicKey `json:"issuer"`
	IssueTime TimePointSec   `json:"issue_time"`
	Issue     Permission     `json:"issue"`
	Transfer  Permission     `json:"transfer"`
	Manage    Permission     `json:"manage"`
}

type TokenResult struct {
	Domain Name128          `json:"domain"`
	Name   Name128          `json:"name"`
	Owner  []keys.PublicKey `json:"owner"`
}

type AccountResult struct {
	Name       Name128          `json:"name"`
	Balance    Asset            `json:"balance"`
	Owner      []keys.PublicKey `json:"owner"`
	CreateTime TimePointSec     `json:"create_time"`
}

// HistoryTransaction 历史记录中的交易，data 为交易体
type HistoryTransaction struct {
	Signatures []keys.Signature `json:"signatures"`
	Data       Transaction      `json:"data"`
}

type TransactionRecord struct {
	SeqNum        int64              `json:"seq_num"`
	TransactionID TransactionID      `json:"transaction_id"`
	BlockNum      uint32             `json:"block_num"`
	Transaction   HistoryTransaction `json:"transaction"`
}

type TransactionsResult struct {
	Transactions []TransactionRecord `json:"transactions"`
}

// PeerStatus net 接口返回的连接状态
type PeerStatus struct {
	Peer          string `json:"peer"`
	Connecting    bool   `json:"connecting"`
	Syncing       bool   `json:"syncing"`
	LastHandshake string `json:"last_handshake,omitempty"`
}

// SignTransactionRequest 钱包 sign_transaction 的参数，线上格式为 [trx, keys, chain_id]
type SignTransactionRequest struct {
	Transaction SignedTransaction
	Keys        []keys.PublicKey
	ChainID     ChainID
}

func (r SignTransactionRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{r.Transaction, r.Keys, r.ChainID})
}

func (r *SignTransactionRequest) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 3 {
		return fmt.Errorf("sign_transaction expects [transaction, keys, chain_id], got %d items", len(parts))
	}
	if err := json.Unmarshal(parts[0], &r.Transaction); err != nil {
		return err
	}
	if err := json.Unmarshal(parts[1], &r.Keys); err != nil {
		return err
	}
	return json.Unmarshal(parts[2], &r.ChainID)
}

// ErrorResponse 节点和钱包共用的错误体
type ErrorResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Err     ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    int            `json:"code"`
	Name    string         `json:"name"`
	What    string         `json:"what"`
	Details []ErrorMessage `json:"details"`
}

type ErrorMessage struct {
	Message string `json:"message"`
	Method  string `json:"method,omitempty"`
}

// Summary 一行描述，优先使用第一条 detail
func (e *ErrorResponse) Summary() string {
	if len(e.Err.Details) > 0 && e.Err.Details[0].Message != "" {
		return e.Err.What + ": " + e.Err.Details[0].Message
	}
	if e.Err.What != "" {
		return e.Err.What
	}
	return e.Message
}

// 节点接口路径
const (
	PathGetInfo          = "/v1/chain/get_info"
	PathGetBlock         = "/v1/chain/get_block"
	PathGetRequiredKeys  = "/v1/chain/get_required_keys"
	PathPushTransaction  = "/v1/chain/push_transaction"
	PathPushTransactions = "/v1/chain/push_transactions"

	PathGetDomain  = "/v1/evt/get_domain"
	PathGetToken   = "/v1/evt/get_token"
	PathGetGroup   = "/v1/evt/get_group"
	PathGetAccount = "/v1/evt/get_account"

	PathGetTransaction  = "/v1/history/get_transaction"
	PathGetTransactions = "/v1/history/get_transactions"

	PathNetConnect     = "/v1/net/connect"
	PathNetDisconnect  = "/v1/net/disconnect"
	PathNetStatus      = "/v1/net/status"
	PathNetConnections = "/v1/net/connections"
)

// 钱包接口路径
const (
	PathWalletCreate          = "/v1/wallet/create"
	PathWalletOpen            = "/v1/wallet/open"
	PathWalletLock            = "/v1/wallet/lock"
	PathWalletLockAll         = "/v1/wallet/lock_all"
	PathWalletUnlock          = "/v1/wallet/unlock"
	PathWalletImportKey       = "/v1/wallet/import_key"
	PathWalletList            = "/v1/wallet/list_wallets"
	PathWalletListKeys        = "/v1/wallet/list_keys"
	PathWalletGetPublicKeys   = "/v1/wallet/get_public_keys"
	PathWalletSignTransaction = "/v1/wallet/sign_transaction"
)

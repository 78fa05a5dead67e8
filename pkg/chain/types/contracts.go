package types

import "evtc/pkg/keys"

// Action names
const (
	ActNewDomain    = "newdomain"
	ActUpdateDomain = "updatedomain"
	ActIssueToken   = "issuetoken"
	ActTransfer     = "transfer"
	ActNewGroup     = "newgroup"
	ActUpdateGroup  = "updategroup"
	ActNewAccount   = "newaccount"
	ActUpdateOwner  = "updateowner"
	ActTransferEVT  = "transferevt"
)

// Resource types used as Action.Domain. Token actions use the token's domain name instead.
const (
	ResourceDomain  Name128 = "domain"
	ResourceGroup   Name128 = "group"
	ResourceAccount Name128 = "account"
)

// IssueKey token issue 动作固定使用的 key
const IssueKey Name128 = "issue"

// Payload 是 action 的 data 部分
type Payload interface {
	ActionName() string
}

type NewDomain struct {
	Name     Name128        `json:"name"`
	Issuer   keys.PublicKey `json:"issuer"`
	Issue    Permission     `json:"issue"`
	Transfer Permission     `json:"transfer"`
	Manage   Permission     `json:"manage"`
}

type UpdateDomain struct {
	Name     Name128     `json:"name"`
	Issue    *Permission `json:"issue,omitempty" rlp:"nil"`
	Transfer *Permission `json:"transfer,omitempty" rlp:"nil"`
	Manage   *Permission `json:"manage,omitempty" rlp:"nil"`
}

type IssueToken struct {
	Domain Name128          `json:"domain"`
	Names  []Name128        `json:"names"`
	Owner  []keys.PublicKey `json:"owner"`
}

type Transfer struct {
	Domain Name128          `json:"domain"`
	Name   Name128          `json:"name"`
	To     []keys.PublicKey `json:"to"`
}

type NewGroup struct {
	ID    string `json:"id"`
	Group Group  `json:"group"`
}

type UpdateGroup struct {
	ID    string `json:"id"`
	Group Group  `json:"group"`
}

type NewAccount struct {
	Name  Name128          `json:"name"`
	Owner []keys.PublicKey `json:"owner"`
}

type UpdateOwner struct {
	Name  Name128          `json:"name"`
	Owner []keys.PublicKey `json:"owner"`
}

type TransferEVT struct {
	From   Name128 `json:"from"`
	To     Name128 `json:"to"`
	Amount Asset   `json:"amount"`
}

func (NewDomain) ActionName() string    { return ActNewDomain }
func (UpdateDomain) ActionName() string { return ActUpdateDomain }
func (IssueToken) ActionName() string   { return ActIssueToken }
func (Transfer) ActionName() string     { return ActTransfer }
func (NewGroup) ActionName() string     { return ActNewGroup }
func (UpdateGroup) ActionName() string  { return ActUpdateGroup }
func (NewAccount) ActionName() string   { return ActNewAccount }
func (UpdateOwner) ActionName() string  { return ActUpdateOwner }
func (TransferEVT) ActionName() string  { return ActTransferEVT }

var payloadFactories = map[string]func() Payload{
	ActNewDomain:    func() Payload { return &NewDomain{} },
	ActUpdateDomain: func() Payload { return &UpdateDomain{} },
	ActIssueToken:   func() Payload { return &IssueToken{} },
	ActTransfer:     func() Payload { return &Transfer{} },
	ActNewGroup:     func() Payload { return &NewGroup{} },
	ActUpdateGroup:  func() Payload { return &UpdateGroup{} },
	ActNewAccount:   func() Payload { return &NewAccount{} },
	ActUpdateOwner:  func() Payload { return &UpdateOwner{} },
	ActTransferEVT:  func() Payload { return &TransferEVT{} },
}

package devnet

import (
	"time"

	"evtc/pkg/chain/types"
	"evtc/pkg/keys"
)

// state 链上资源。存储的结构体不做原地修改，修改时替换指针，clone 只需复制 map。
type state struct {
	domains  map[types.Name128]*types.DomainResult
	tokens   map[types.Name128]map[types.Name128]*types.TokenResult
	groups   map[string]*types.Group
	accounts map[types.Name128]*types.AccountResult
}

func newState() *state {
	return &state{
		domains:  make(map[types.Name128]*types.DomainResult),
		tokens:   make(map[types.Name128]map[types.Name128]*types.TokenResult),
		groups:   make(map[string]*types.Group),
		accounts: make(map[types.Name128]*types.AccountResult),
	}
}

func (s *state) clone() *state {
	out := newState()
	for k, v := range s.domains {
		out.domains[k] = v
	}
	for d, m := range s.tokens {
		inner := make(map[types.Name128]*types.TokenResult, len(m))
		for k, v := range m {
			inner[k] = v
		}
		out.tokens[d] = inner
	}
	for k, v := range s.groups {
		out.groups[k] = v
	}
	for k, v := range s.accounts {
		out.accounts[k] = v
	}
	return out
}

func (s *state) token(domain, name types.Name128) *types.TokenResult {
	return s.tokens[domain][name]
}

// checkRefs 权限中引用的 group 必须已存在
func (s *state) checkRefs(perms ...types.Permission) error {
	for _, p := range perms {
		if p.Threshold == 0 {
			return errActionValidate.Errorf("permission %q: threshold must be positive", p.Name)
		}
		for _, a := range p.Authorizers {
			if a.Ref.Type == types.RefGroup {
				if _, ok := s.groups[a.Ref.Group]; !ok {
					return errActionValidate.Errorf("permission %q references unknown group %s", p.Name, a.Ref.Group)
				}
			}
		}
	}
	return nil
}

// apply 把一个 payload 应用到 s 上
func (s *state) apply(p types.Payload, now time.Time) error {
	switch p := p.(type) {
	case *types.NewDomain:
		if _, ok := s.domains[p.Name]; ok {
			return errActionValidate.Errorf("domain %s already exists", p.Name)
		}
		if err := s.checkRefs(p.Issue, p.Transfer, p.Manage); err != nil {
			return err
		}
		s.domains[p.Name] = &types.DomainResult{
			Name:      p.Name,
			Issuer:    p.Issuer,
			IssueTime: types.NewTimePointSec(now),
			Issue:     p.Issue,
			Transfer:  p.Transfer,
			Manage:    p.Manage,
		}

	case *types.UpdateDomain:
		d, ok := s.domains[p.Name]
		if !ok {
			return errUnknownDomain.Errorf("%s", p.Name)
		}
		next := *d
		if p.Issue != nil {
			next.Issue = *p.Issue
		}
		if p.Transfer != nil {
			next.Transfer = *p.Transfer
		}
		if p.Manage != nil {
			next.Manage = *p.Manage
		}
		if err := s.checkRefs(next.Issue, next.Transfer, next.Manage); err != nil {
			return err
		}
		s.domains[p.Name] = &next

	case *types.IssueToken:
		if _, ok := s.domains[p.Domain]; !ok {
			return errUnknownDomain.Errorf("%s", p.Domain)
		}
		if len(p.Owner) == 0 {
			return errActionValidate.Errorf("issued tokens must have an owner")
		}
		if s.tokens[p.Domain] == nil {
			s.tokens[p.Domain] = make(map[types.Name128]*types.TokenResult)
		}
		for _, name := range p.Names {
			if s.tokens[p.Domain][name] != nil {
				return errActionValidate.Errorf("token %s in domain %s already exists", name, p.Domain)
			}
			s.tokens[p.Domain][name] = &types.TokenResult{Domain: p.Domain, Name: name, Owner: copyKeys(p.Owner)}
		}

	case *types.Transfer:
		t := s.token(p.Domain, p.Name)
		if t == nil {
			return errUnknownToken.Errorf("%s in domain %s", p.Name, p.Domain)
		}
		if len(p.To) == 0 {
			return errActionValidate.Errorf("transfer needs at least one receiver")
		}
		s.tokens[p.Domain][p.Name] = &types.TokenResult{Domain: t.Domain, Name: t.Name, Owner: copyKeys(p.To)}

	case *types.NewGroup:
		if _, ok := s.groups[p.ID]; ok {
			return errActionValidate.Errorf("group %s already exists", p.ID)
		}
		if p.ID != p.Group.ID() {
			return errActionValidate.Errorf("group id %s does not match group key", p.ID)
		}
		if err := p.Group.Validate(); err != nil {
			return errActionValidate.Errorf("group %s: %v", p.ID, err)
		}
		g := p.Group
		s.groups[p.ID] = &g

	case *types.UpdateGroup:
		old, ok := s.groups[p.ID]
		if !ok {
			return errUnknownGroup.Errorf("%s", p.ID)
		}
		if p.Group.Key != old.Key {
			return errActionValidate.Errorf("group key of %s cannot be changed", p.ID)
		}
		if err := p.Group.Validate(); err != nil {
			return errActionValidate.Errorf("group %s: %v", p.ID, err)
		}
		g := p.Group
		s.groups[p.ID] = &g

	case *types.NewAccount:
		if _, ok := s.accounts[p.Name]; ok {
			return errActionValidate.Errorf("account %s already exists", p.Name)
		}
		if len(p.Owner) == 0 {
			return errActionValidate.Errorf("account must have an owner")
		}
		s.accounts[p.Name] = &types.AccountResult{
			Name:       p.Name,
			Balance:    types.Asset{Symbol: types.DefaultSymbol},
			Owner:      copyKeys(p.Owner),
			CreateTime: types.NewTimePointSec(now),
		}

	case *types.UpdateOwner:
		a, ok := s.accounts[p.Name]
		if !ok {
			return errUnknownAccount.Errorf("%s", p.Name)
		}
		if len(p.Owner) == 0 {
			return errActionValidate.Errorf("account must have an owner")
		}
		next := *a
		next.Owner = copyKeys(p.Owner)
		s.accounts[p.Name] = &next

	case *types.TransferEVT:
		from, ok := s.accounts[p.From]
		if !ok {
			return errUnknownAccount.Errorf("%s", p.From)
		}
		to, ok := s.accounts[p.To]
		if !ok {
			return errUnknownAccount.Errorf("%s", p.To)
		}
		if p.From == p.To {
			return errActionValidate.Errorf("cannot transfer to the same account")
		}
		if p.Amount.Symbol != from.Balance.Symbol {
			return errActionValidate.Errorf("symbol %s does not match balance symbol %s", p.Amount.Symbol, from.Balance.Symbol)
		}
		if from.Balance.Amount < p.Amount.Amount {
			return errActionValidate.Errorf("balance of %s is %s, cannot transfer %s", p.From, from.Balance, p.Amount)
		}
		nf, nt := *from, *to
		nf.Balance.Amount -= p.Amount.Amount
		nt.Balance.Amount += p.Amount.Amount
		s.accounts[p.From], s.accounts[p.To] = &nf, &nt

	default:
		return errActionValidate.Errorf("unsupported action %s", p.ActionName())
	}
	return nil
}

func copyKeys(in []keys.PublicKey) []keys.PublicKey {
	return append([]keys.PublicKey(nil), in...)
}

// touchedAccounts 历史索引用到的账户
func touchedAccounts(p types.Payload) []types.Name128 {
	switch p := p.(type) {
	case *types.NewAccount:
		return []types.Name128{p.Name}
	case *types.UpdateOwner:
		return []types.Name128{p.Name}
	case *types.TransferEVT:
		return []types.Name128{p.From, p.To}
	}
	return nil
}

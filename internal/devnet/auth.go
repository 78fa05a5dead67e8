package devnet

import (
	"evtc/pkg/chain/types"
	"evtc/pkg/keys"
)

// authority 一个 action 需要满足的授权：permission 加上 OWNER 组当前对应的持有者
type authority struct {
	action string
	perm   types.Permission
	owners []keys.PublicKey
}

type keySet map[keys.PublicKey]struct{}

func newKeySet(ks []keys.PublicKey) keySet {
	s := make(keySet, len(ks))
	for _, k := range ks {
		s[k] = struct{}{}
	}
	return s
}

func (s keySet) has(k keys.PublicKey) bool {
	_, ok := s[k]
	return ok
}

func singleKey(name string, pk keys.PublicKey) types.Permission {
	return types.Permission{
		Name:        name,
		Threshold:   1,
		Authorizers: []types.Authorizer{{Ref: types.KeyRef(pk), Weight: 1}},
	}
}

func ownerOnly(name string) types.Permission {
	return types.Permission{
		Name:        name,
		Threshold:   1,
		Authorizers: []types.Authorizer{{Ref: types.OwnerRef(), Weight: 1}},
	}
}

// authorityFor 在执行 p 之前的状态 s 上计算授权要求
func authorityFor(s *state, p types.Payload) (authority, error) {
	auth := authority{action: p.ActionName()}

	switch p := p.(type) {
	case *types.NewDomain:
		auth.perm = singleKey("issuer", p.Issuer)
	case *types.UpdateDomain:
		d, ok := s.domains[p.Name]
		if !ok {
			return auth, errUnknownDomain.Errorf("%s", p.Name)
		}
		auth.perm = d.Manage
	case *types.IssueToken:
		d, ok := s.domains[p.Domain]
		if !ok {
			return auth, errUnknownDomain.Errorf("%s", p.Domain)
		}
		auth.perm = d.Issue
	case *types.Transfer:
		d, ok := s.domains[p.Domain]
		if !ok {
			return auth, errUnknownDomain.Errorf("%s", p.Domain)
		}
		t := s.token(p.Domain, p.Name)
		if t == nil {
			return auth, errUnknownToken.Errorf("%s in domain %s", p.Name, p.Domain)
		}
		auth.perm = d.Transfer
		auth.owners = t.Owner
	case *types.NewGroup:
		auth.perm = singleKey("group", p.Group.Key)
	case *types.UpdateGroup:
		g, ok := s.groups[p.ID]
		if !ok {
			return auth, errUnknownGroup.Errorf("%s", p.ID)
		}
		auth.perm = singleKey("group", g.Key)
	case *types.NewAccount:
		auth.perm = ownerOnly("owner")
		auth.owners = p.Owner
	case *types.UpdateOwner:
		a, ok := s.accounts[p.Name]
		if !ok {
			return auth, errUnknownAccount.Errorf("%s", p.Name)
		}
		auth.perm = ownerOnly("owner")
		auth.owners = a.Owner
	case *types.TransferEVT:
		a, ok := s.accounts[p.From]
		if !ok {
			return auth, errUnknownAccount.Errorf("%s", p.From)
		}
		auth.perm = ownerOnly("owner")
		auth.owners = a.Owner
	default:
		return auth, errActionValidate.Errorf("unsupported action %s", p.ActionName())
	}
	return auth, nil
}

// satisfied 用 signers 计算 permission 的权重和是否达到阈值
func (a authority) satisfied(groups map[string]*types.Group, signers keySet) bool {
	var total uint64
	for _, w := range a.perm.Authorizers {
		ok := false
		switch w.Ref.Type {
		case types.RefKey:
			ok = signers.has(w.Ref.Key)
		case types.RefOwner:
			ok = len(a.owners) > 0
			for _, o := range a.owners {
				if !signers.has(o) {
					ok = false
					break
				}
			}
		case types.RefGroup:
			if g := groups[w.Ref.Group]; g != nil {
				ok = nodeSatisfied(g.Root, signers, 1)
			}
		}
		if ok {
			total += uint64(w.Weight)
		}
	}
	return a.perm.Threshold > 0 && total >= uint64(a.perm.Threshold)
}

func nodeSatisfied(n *types.GroupNode, signers keySet, depth int) bool {
	if n == nil || depth > types.MaxGroupDepth {
		return false
	}
	switch n.Kind() {
	case types.NodeKey:
		return signers.has(n.Key)
	case types.NodeBranch:
		var total uint64
		for _, c := range n.Nodes {
			if nodeSatisfied(c, signers, depth+1) {
				total += uint64(c.Weight)
			}
		}
		return n.Threshold > 0 && total >= uint64(n.Threshold)
	}
	return false
}

// referenced 授权中可能用到的全部公钥
func (a authority) referenced(groups map[string]*types.Group) keySet {
	out := make(keySet)
	for _, w := range a.perm.Authorizers {
		switch w.Ref.Type {
		case types.RefKey:
			out[w.Ref.Key] = struct{}{}
		case types.RefOwner:
			for _, o := range a.owners {
				out[o] = struct{}{}
			}
		case types.RefGroup:
			if g := groups[w.Ref.Group]; g != nil {
				for _, k := range g.Keys() {
					out[k] = struct{}{}
				}
			}
		}
	}
	return out
}

// checked 授权检查时使用的 (authority, 当时的 groups) 对
type checked struct {
	auth   authority
	groups map[string]*types.Group
}

func allSatisfied(checks []checked, signers keySet) bool {
	for _, c := range checks {
		if !c.auth.satisfied(c.groups, signers) {
			return false
		}
	}
	return true
}

// requiredKeys 从 available 中选出足以满足所有检查的最小子集，顺序与 available 一致。
// 先取所有被引用的公钥，再逐个尝试去掉。
func requiredKeys(checks []checked, available []keys.PublicKey) ([]keys.PublicKey, bool) {
	refs := make(keySet)
	for _, c := range checks {
		for k := range c.auth.referenced(c.groups) {
			refs[k] = struct{}{}
		}
	}

	candidate := make(keySet)
	var order []keys.PublicKey
	for _, k := range available {
		if refs.has(k) && !candidate.has(k) {
			candidate[k] = struct{}{}
			order = append(order, k)
		}
	}
	if !allSatisfied(checks, candidate) {
		return nil, false
	}

	for _, k := range order {
		delete(candidate, k)
		if !allSatisfied(checks, candidate) {
			candidate[k] = struct{}{}
		}
	}

	out := []keys.PublicKey{}
	for _, k := range order {
		if candidate.has(k) {
			out = append(out, k)
		}
	}
	return out, true
}

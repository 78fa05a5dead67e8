package action

import (
	"fmt"

	"evtc/pkg/chain/types"
	"evtc/pkg/errno"
)

// Address 按操作的主标识确定 action 指向的资源 (resource type, resource key)
func Address(p types.Payload) (domain, key types.Name128, err error) {
	switch v := p.(type) {
	case *types.NewDomain:
		return types.ResourceDomain, v.Name, nil
	case *types.UpdateDomain:
		return types.ResourceDomain, v.Name, nil
	case *types.IssueToken:
		return v.Domain, types.IssueKey, nil
	case *types.Transfer:
		return v.Domain, v.Name, nil
	case *types.NewGroup:
		return types.ResourceGroup, types.Name128(v.ID), nil
	case *types.UpdateGroup:
		return types.ResourceGroup, types.Name128(v.ID), nil
	case *types.NewAccount:
		return types.ResourceAccount, v.Name, nil
	case *types.UpdateOwner:
		return types.ResourceAccount, v.Name, nil
	case *types.TransferEVT:
		return types.ResourceAccount, v.From, nil
	}
	return "", "", fmt.Errorf("unsupported payload %T", p)
}

// Encode 把一个结构化命令编码成 action
func Encode(p types.Payload) (types.Action, error) {
	if err := validate(p); err != nil {
		return types.Action{}, err
	}
	domain, key, err := Address(p)
	if err != nil {
		return types.Action{}, err
	}
	return types.NewAction(domain, key, p)
}

func validate(p types.Payload) error {
	switch v := p.(type) {
	case *types.IssueToken:
		if len(v.Names) == 0 {
			return errno.ErrInvalidName.New("no token names to issue")
		}
		if len(v.Owner) == 0 {
			return errno.ErrInvalidKey.New("token owner is empty")
		}
	case *types.Transfer:
		if len(v.To) == 0 {
			return errno.ErrInvalidKey.New("transfer target is empty")
		}
	case *types.NewGroup:
		return validateGroup(v.ID, &v.Group, true)
	case *types.UpdateGroup:
		return validateGroup(v.ID, &v.Group, false)
	case *types.NewAccount:
		if len(v.Owner) == 0 {
			return errno.ErrInvalidKey.New("account owner is empty")
		}
	case *types.UpdateOwner:
		if len(v.Owner) == 0 {
			return errno.ErrInvalidKey.New("account owner is empty")
		}
	case *types.TransferEVT:
		if v.From == v.To {
			return errno.ErrInvalidName.New("cannot transfer from %s to itself", v.From)
		}
	}
	return nil
}

// 新建 group 的 id 必须由 group key 派生
func validateGroup(id string, g *types.Group, derived bool) error {
	if err := g.Validate(); err != nil {
		return errno.ErrGroupFormat.Wrap(err, "group %q", g.Name)
	}
	if !types.ValidGroupID(id) {
		return errno.ErrInvalidGroup.New("group id %q is not a base58 group id", id)
	}
	if derived && id != g.ID() {
		return errno.ErrInvalidGroup.New("group id %q does not match group key %s", id, g.Key)
	}
	return nil
}

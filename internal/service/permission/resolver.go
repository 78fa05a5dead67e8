package permission

import (
	"strings"

	"evtc/pkg/chain/types"
	"evtc/pkg/errno"
	"evtc/pkg/jsonutil"
	"evtc/pkg/keys"
)

// Default 使用默认授权的哨兵值
const Default = "default"

// Permission slot names
const (
	Issue    = "issue"
	Transfer = "transfer"
	Manage   = "manage"
)

// DefaultPermission threshold 1，单一授权者权重 1。
// 零公钥指向 owner group，否则指向该公钥。
func DefaultPermission(name string, key keys.PublicKey) types.Permission {
	ref := types.KeyRef(key)
	if key.IsZero() {
		ref = types.OwnerRef()
	}
	return types.Permission{
		Name:        name,
		Threshold:   1,
		Authorizers: []types.Authorizer{{Ref: ref, Weight: 1}},
	}
}

// Resolve 把 "default"、内联 JSON 或 JSON 文件路径解析为 Permission
func Resolve(input, name string, key keys.PublicKey) (types.Permission, error) {
	if strings.TrimSpace(input) == Default {
		return DefaultPermission(name, key), nil
	}

	var perm types.Permission
	if err := jsonutil.Load(input, &perm, errno.ErrPermissionFormat); err != nil {
		return types.Permission{}, err
	}
	if perm.Name == "" {
		perm.Name = name
	}
	if perm.Name != name {
		return types.Permission{}, errno.ErrPermissionFormat.New("permission %q given for the %s slot", perm.Name, name)
	}
	return perm, nil
}

// ResolveOptional 空输入或 "default" 表示不修改该权限
func ResolveOptional(input, name string, key keys.PublicKey) (*types.Permission, error) {
	if s := strings.TrimSpace(input); s == "" || s == Default {
		return nil, nil
	}
	perm, err := Resolve(input, name, key)
	if err != nil {
		return nil, err
	}
	return &perm, nil
}

// DomainPermissions 新建域的三个权限：issue 与 manage 默认归发行人，transfer 默认归 token 持有者
func DomainPermissions(issuer keys.PublicKey, issue, transfer, manage string) (types.Permission, types.Permission, types.Permission, error) {
	issuePerm, err := Resolve(issue, Issue, issuer)
	if err != nil {
		return types.Permission{}, types.Permission{}, types.Permission{}, err
	}
	transferPerm, err := Resolve(transfer, Transfer, keys.PublicKey{})
	if err != nil {
		return types.Permission{}, types.Permission{}, types.Permission{}, err
	}
	managePerm, err := Resolve(manage, Manage, issuer)
	if err != nil {
		return types.Permission{}, types.Permission{}, types.Permission{}, err
	}
	return issuePerm, transferPerm, managePerm, nil
}

// ResolveGroupID 显式 id 优先，其次由 group key 派生，两者都没有时报错
func ResolveGroupID(id, key string) (string, error) {
	switch {
	case id != "":
		if !types.ValidGroupID(id) {
			return "", errno.ErrInvalidGroup.New("group id %q is not a base58 group id", id)
		}
		return id, nil
	case key != "":
		pk, err := keys.ParsePublicKey(key)
		if err != nil {
			return "", err
		}
		if pk.IsZero() {
			return "", errno.ErrInvalidKey.New("group key is the zero key")
		}
		return types.GroupIDFromKey(pk), nil
	}
	return "", errno.ErrMissingIdentifier.New("either a group id or a group key is required")
}

// LoadGroup 解析并校验 group 定义
func LoadGroup(input string) (*types.Group, error) {
	var g types.Group
	if err := jsonutil.Load(input, &g, errno.ErrGroupFormat); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, errno.ErrGroupFormat.Wrap(err, "group %q", g.Name)
	}
	return &g, nil
}

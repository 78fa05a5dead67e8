package types

import (
	"fmt"
	"strings"

	"evtc/pkg/keys"
)

// RefType 授权引用的种类
type RefType uint8

const (
	RefKey   RefType = iota // "[A] EVT..."
	RefOwner                // "[G] .OWNER"
	RefGroup                // "[G] <group id>"
)

// OwnerGroup 内置 owner group 的名称：资源的当前持有者
const OwnerGroup = ".OWNER"

// AuthorizerRef 授权者引用：公钥、owner group 或具名 group
type AuthorizerRef struct {
	Type  RefType
	Key   keys.PublicKey
	Group string
}

func KeyRef(pk keys.PublicKey) AuthorizerRef {
	return AuthorizerRef{Type: RefKey, Key: pk}
}

func OwnerRef() AuthorizerRef {
	return AuthorizerRef{Type: RefOwner, Group: OwnerGroup}
}

func GroupRef(id string) AuthorizerRef {
	if id == OwnerGroup {
		return OwnerRef()
	}
	return AuthorizerRef{Type: RefGroup, Group: id}
}

func ParseAuthorizerRef(s string) (AuthorizerRef, error) {
	switch {
	case strings.HasPrefix(s, "[A] "):
		pk, err := keys.ParsePublicKey(s[4:])
		if err != nil {
			return AuthorizerRef{}, err
		}
		return KeyRef(pk), nil
	case strings.HasPrefix(s, "[G] "):
		name := strings.TrimSpace(s[4:])
		if name == "" {
			return AuthorizerRef{}, fmt.Errorf("authorizer %q has empty group name", s)
		}
		return GroupRef(name), nil
	}
	return AuthorizerRef{}, fmt.Errorf("authorizer %q must start with [A] or [G]", s)
}

func (r AuthorizerRef) String() string {
	switch r.Type {
	case RefKey:
		return "[A] " + r.Key.String()
	case RefOwner:
		return "[G] " + OwnerGroup
	default:
		return "[G] " + r.Group
	}
}

func (r AuthorizerRef) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *AuthorizerRef) UnmarshalText(text []byte) error {
	parsed, err := ParseAuthorizerRef(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Authorizer 带权重的一票
type Authorizer struct {
	Ref    AuthorizerRef `json:"ref"`
	Weight uint32        `json:"weight"`
}

// Permission 具名的加权阈值授权规则 (issue / transfer / manage)。
// 阈值是否可达由节点判定，客户端不做检查。
type Permission struct {
	Name        string       `json:"name"`
	Threshold   uint32       `json:"threshold"`
	Authorizers []Authorizer `json:"authorizers"`
}

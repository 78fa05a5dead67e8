package types

import (
	"evtc/pkg/errno"
)

// MaxNameLength name128 最多 21 个字符
const MaxNameLength = 21

// Name128 定长名称：域名、token 名、账户名以及 action 的 domain/key 字段。
// group id (base58) 也以 Name128 的形式出现在 action key 中。
type Name128 string

// ParseName 校验用户输入的名称
func ParseName(s string) (Name128, error) {
	if s == "" {
		return "", errno.ErrInvalidName.New("name is empty")
	}
	if len(s) > MaxNameLength {
		return "", errno.ErrInvalidName.New("name %q is longer than %d characters", s, MaxNameLength)
	}
	for i := 0; i < len(s); i++ {
		if !isNameChar(s[i]) {
			return "", errno.ErrInvalidName.New("name %q contains invalid character %q", s, s[i])
		}
	}
	return Name128(s), nil
}

// ParseNames 批量解析
func ParseNames(ss []string) ([]Name128, error) {
	out := make([]Name128, 0, len(ss))
	for _, s := range ss {
		n, err := ParseName(s)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (n Name128) String() string {
	return string(n)
}

func isNameChar(c byte) bool {
	return c == '.' || c == '-' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}

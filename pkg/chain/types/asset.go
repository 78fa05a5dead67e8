package types

import (
	"math/big"
	"strings"

	"evtc/pkg/errno"

	"github.com/shopspring/decimal"
)

// AssetPrecision EVT 固定 5 位小数
const AssetPrecision = 5

// DefaultSymbol 原生代币符号
const DefaultSymbol = "EVT"

// Asset 以最小单位保存的数量 + 符号，例如 "12.00000 EVT"
type Asset struct {
	Amount uint64
	Symbol string
}

// ParseAsset 解析 "<amount> <SYMBOL>"，符号省略时为 EVT
func ParseAsset(s string) (Asset, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return Asset{}, errno.ErrInvalidAsset.New("%q", s)
	}

	amount, err := decimal.NewFromString(fields[0])
	if err != nil {
		return Asset{}, errno.ErrInvalidAsset.Wrap(err, "%q", s)
	}
	if amount.IsNegative() {
		return Asset{}, errno.ErrInvalidAsset.New("%q is negative", s)
	}

	units := amount.Shift(AssetPrecision)
	if !units.IsInteger() {
		return Asset{}, errno.ErrInvalidAsset.New("%q has more than %d decimals", s, AssetPrecision)
	}
	if units.BigInt().BitLen() > 63 {
		return Asset{}, errno.ErrInvalidAsset.New("%q is out of range", s)
	}

	symbol := DefaultSymbol
	if len(fields) == 2 {
		symbol = fields[1]
	}
	if !validSymbol(symbol) {
		return Asset{}, errno.ErrInvalidAsset.New("%q has invalid symbol", s)
	}

	return Asset{Amount: units.BigInt().Uint64(), Symbol: symbol}, nil
}

func (a Asset) String() string {
	amount := decimal.NewFromBigInt(new(big.Int).SetUint64(a.Amount), -AssetPrecision)
	return amount.StringFixed(AssetPrecision) + " " + a.Symbol
}

func (a Asset) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Asset) UnmarshalText(text []byte) error {
	parsed, err := ParseAsset(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func validSymbol(s string) bool {
	if len(s) == 0 || len(s) > 7 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

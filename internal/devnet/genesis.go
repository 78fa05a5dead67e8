package devnet

import (
	"fmt"
	"strings"

	"evtc/pkg/chain/types"
	"evtc/pkg/crypto_util"
	"evtc/pkg/keys"
)

// ParseGenesisAccount 解析 "name:PUB1,PUB2[:amount]"，amount 省略符号时为 EVT
func ParseGenesisAccount(s string) (GenesisAccount, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return GenesisAccount{}, fmt.Errorf("genesis account %q: want name:keys[:amount]", s)
	}

	name, err := types.ParseName(parts[0])
	if err != nil {
		return GenesisAccount{}, err
	}
	owner, err := keys.ParsePublicKeys(strings.Split(parts[1], ","))
	if err != nil {
		return GenesisAccount{}, err
	}

	acc := GenesisAccount{Name: name, Owner: owner, Balance: types.Asset{Symbol: types.DefaultSymbol}}
	if len(parts) == 3 {
		if acc.Balance, err = types.ParseAsset(parts[2]); err != nil {
			return GenesisAccount{}, err
		}
	}
	return acc, nil
}

// ChainIDFromConfig 空字符串时使用固定的开发链 id
func ChainIDFromConfig(s string) (types.ChainID, error) {
	if s == "" {
		return types.ChainID(crypto_util.SHA256([]byte("evt devnet"))), nil
	}
	return types.ParseChecksum256(s)
}

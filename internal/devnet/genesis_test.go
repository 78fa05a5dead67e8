package devnet

import (
	"testing"

	"evtc/pkg/chain/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGenesisAccount(t *testing.T) {
	a, b := newPriv(t).PublicKey(), newPriv(t).PublicKey()

	acc, err := ParseGenesisAccount("faucet:" + a.String() + "," + b.String() + ":12.5")
	require.NoError(t, err)
	assert.Equal(t, types.Name128("faucet"), acc.Name)
	assert.Len(t, acc.Owner, 2)
	assert.Equal(t, "12.50000 EVT", acc.Balance.String())

	acc, err = ParseGenesisAccount("alice:" + a.String())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), acc.Balance.Amount)
	assert.Equal(t, types.DefaultSymbol, acc.Balance.Symbol)

	for _, bad := range []string{"alice", "alice:notakey", "alice:" + a.String() + ":1.2.3", "a:b:c:d"} {
		_, err := ParseGenesisAccount(bad)
		assert.Error(t, err, bad)
	}
}

func TestChainIDFromConfig(t *testing.T) {
	def, err := ChainIDFromConfig("")
	require.NoError(t, err)
	assert.False(t, def.IsZero())

	id, err := ChainIDFromConfig(def.String())
	require.NoError(t, err)
	assert.Equal(t, def, id)

	_, err = ChainIDFromConfig("xyz")
	assert.Error(t, err)
}

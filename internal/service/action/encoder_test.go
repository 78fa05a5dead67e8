package action

import (
	"errors"
	"testing"

	"evtc/pkg/chain/types"
	"evtc/pkg/errno"
	"evtc/pkg/keys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pubKey(t *testing.T) keys.PublicKey {
	t.Helper()
	priv, err := keys.GeneratePrivateKey()
	require.NoError(t, err)
	return priv.PublicKey()
}

func TestEncodeAddressing(t *testing.T) {
	owner := pubKey(t)
	manager := pubKey(t)
	group := types.Group{Name: "g", Key: manager, Root: types.BranchNode(1, 0, types.KeyNode(owner, 1))}
	amount, err := types.ParseAsset("5 EVT")
	require.NoError(t, err)

	tests := []struct {
		name    string
		payload types.Payload
		domain  types.Name128
		key     types.Name128
	}{
		{"newdomain", &types.NewDomain{Name: "mydomain", Issuer: owner}, "domain", "mydomain"},
		{"updatedomain", &types.UpdateDomain{Name: "mydomain"}, "domain", "mydomain"},
		{"issuetoken", &types.IssueToken{Domain: "mydomain", Names: []types.Name128{"t1"}, Owner: []keys.PublicKey{owner}}, "mydomain", "issue"},
		{"transfer", &types.Transfer{Domain: "mydomain", Name: "t1", To: []keys.PublicKey{owner}}, "mydomain", "t1"},
		{"newgroup", &types.NewGroup{ID: group.ID(), Group: group}, "group", types.Name128(group.ID())},
		{"newaccount", &types.NewAccount{Name: "alice", Owner: []keys.PublicKey{owner}}, "account", "alice"},
		{"updateowner", &types.UpdateOwner{Name: "alice", Owner: []keys.PublicKey{owner}}, "account", "alice"},
		{"transferevt", &types.TransferEVT{From: "alice", To: "bob", Amount: amount}, "account", "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act, err := Encode(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.name, act.Name)
			assert.Equal(t, tt.domain, act.Domain)
			assert.Equal(t, tt.key, act.Key)

			decoded, err := act.Decode()
			require.NoError(t, err)
			d, k, err := Address(decoded)
			require.NoError(t, err)
			assert.Equal(t, tt.domain, d)
			assert.Equal(t, tt.key, k)
		})
	}
}

func TestEncodeRejectsInvalidGroups(t *testing.T) {
	manager := pubKey(t)
	other := pubKey(t)

	bad := types.Group{Name: "g", Key: manager, Root: types.BranchNode(3, 0, types.KeyNode(other, 1))}
	_, err := Encode(&types.NewGroup{ID: bad.ID(), Group: bad})
	assert.True(t, errors.Is(err, errno.ErrGroupFormat))

	good := types.Group{Name: "g", Key: manager, Root: types.BranchNode(1, 0, types.KeyNode(other, 1))}
	_, err = Encode(&types.NewGroup{ID: types.GroupIDFromKey(other), Group: good})
	assert.True(t, errors.Is(err, errno.ErrInvalidGroup))

	// update 允许任意合法 id
	_, err = Encode(&types.UpdateGroup{ID: types.GroupIDFromKey(other), Group: good})
	assert.NoError(t, err)
}

func TestEncodeRejectsEmptyLists(t *testing.T) {
	_, err := Encode(&types.IssueToken{Domain: "d", Owner: []keys.PublicKey{pubKey(t)}})
	assert.True(t, errors.Is(err, errno.ErrInvalidName))

	_, err = Encode(&types.Transfer{Domain: "d", Name: "t"})
	assert.True(t, errors.Is(err, errno.ErrInvalidKey))

	_, err = Encode(&types.TransferEVT{From: "a", To: "a"})
	assert.Error(t, err)
}

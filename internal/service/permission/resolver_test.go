package permission

import (
	"errors"
	"os"
	"path/filepath"
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

func TestDefaultPermissionWithKey(t *testing.T) {
	for i := 0; i < 5; i++ {
		pk := pubKey(t)
		perm, err := Resolve(Default, Issue, pk)
		require.NoError(t, err)

		assert.Equal(t, uint32(1), perm.Threshold)
		require.Len(t, perm.Authorizers, 1)
		assert.Equal(t, types.KeyRef(pk), perm.Authorizers[0].Ref)
		assert.Equal(t, uint32(1), perm.Authorizers[0].Weight)
	}
}

func TestDefaultPermissionWithZeroKey(t *testing.T) {
	perm, err := Resolve(Default, Transfer, keys.PublicKey{})
	require.NoError(t, err)

	require.Len(t, perm.Authorizers, 1)
	assert.Equal(t, types.RefOwner, perm.Authorizers[0].Ref.Type)
	assert.Equal(t, "[G] .OWNER", perm.Authorizers[0].Ref.String())
}

func TestResolveFromJSON(t *testing.T) {
	pk := pubKey(t)
	doc := `{"name":"manage","threshold":2,"authorizers":[{"ref":"[A] ` + pk.String() + `","weight":2}]}`

	perm, err := Resolve(doc, Manage, keys.PublicKey{})
	require.NoError(t, err)
	assert.Equal(t, uint32(2), perm.Threshold)

	path := filepath.Join(t.TempDir(), "manage.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	fromFile, err := Resolve(path, Manage, keys.PublicKey{})
	require.NoError(t, err)
	assert.Equal(t, perm, fromFile)

	_, err = Resolve(`{"threshold":`, Manage, pk)
	assert.True(t, errors.Is(err, errno.ErrPermissionFormat))

	_, err = Resolve(doc, Issue, pk)
	assert.True(t, errors.Is(err, errno.ErrPermissionFormat))

	_, err = Resolve(`{"threshold":1,"authorizers":[{"ref":"[Z] x","weight":1}]}`, Issue, pk)
	assert.True(t, errors.Is(err, errno.ErrPermissionFormat))
}

func TestDomainPermissions(t *testing.T) {
	issuer := pubKey(t)
	issue, transfer, manage, err := DomainPermissions(issuer, Default, Default, Default)
	require.NoError(t, err)

	assert.Equal(t, types.KeyRef(issuer), issue.Authorizers[0].Ref)
	assert.Equal(t, types.OwnerRef(), transfer.Authorizers[0].Ref)
	assert.Equal(t, types.KeyRef(issuer), manage.Authorizers[0].Ref)
	assert.Equal(t, "transfer", transfer.Name)
}

func TestResolveOptional(t *testing.T) {
	var zero keys.PublicKey
	for _, in := range []string{"", Default, " default "} {
		perm, err := ResolveOptional(in, Issue, zero)
		require.NoError(t, err, in)
		assert.Nil(t, perm, "input %q must leave the slot unchanged", in)
	}

	pk := pubKey(t)
	doc := `{"name":"issue","threshold":1,"authorizers":[{"ref":"[A] ` + pk.String() + `","weight":1}]}`
	perm, err := ResolveOptional(doc, Issue, zero)
	require.NoError(t, err)
	require.NotNil(t, perm)
	assert.Equal(t, types.KeyRef(pk), perm.Authorizers[0].Ref)
}

func TestResolveGroupID(t *testing.T) {
	pk := pubKey(t)
	derived := types.GroupIDFromKey(pk)

	id, err := ResolveGroupID("", pk.String())
	require.NoError(t, err)
	assert.Equal(t, derived, id)

	id, err = ResolveGroupID(derived, "")
	require.NoError(t, err)
	assert.Equal(t, derived, id)

	_, err = ResolveGroupID("", "")
	assert.True(t, errors.Is(err, errno.ErrMissingIdentifier))

	_, err = ResolveGroupID("not-base58-0OIl", "")
	assert.True(t, errors.Is(err, errno.ErrInvalidGroup))

	_, err = ResolveGroupID("", "EVTbroken")
	assert.True(t, errors.Is(err, errno.ErrInvalidKey))
}

func TestLoadGroup(t *testing.T) {
	manager := pubKey(t)
	k1 := pubKey(t)
	doc := `{"name":"g","key":"` + manager.String() + `","root":{"threshold":1,"nodes":[{"key":"` + k1.String() + `","weight":1}]}}`

	g, err := LoadGroup(doc)
	require.NoError(t, err)
	assert.Equal(t, types.GroupIDFromKey(manager), g.ID())

	_, err = LoadGroup(`{"name":"g","key":"` + manager.String() + `","root":{"threshold":3,"nodes":[{"key":"` + k1.String() + `","weight":1}]}}`)
	assert.True(t, errors.Is(err, errno.ErrGroupFormat))

	_, err = LoadGroup(`{"name":`)
	assert.True(t, errors.Is(err, errno.ErrGroupFormat))
}

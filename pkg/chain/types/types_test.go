package types

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"evtc/pkg/errno"
	"evtc/pkg/keys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T) (*keys.PrivateKey, keys.PublicKey) {
	t.Helper()
	priv, err := keys.GeneratePrivateKey()
	require.NoError(t, err)
	return priv, priv.PublicKey()
}

func TestParseName(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"mydomain", true},
		{"my.domain-01", true},
		{strings.Repeat("a", MaxNameLength), true},
		{strings.Repeat("a", MaxNameLength+1), false},
		{"", false},
		{"bad name", false},
		{"bad/name", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseName(tt.input)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, errno.ErrInvalidName))
			}
		})
	}
}

func TestParseAsset(t *testing.T) {
	tests := []struct {
		input  string
		amount uint64
		symbol string
		ok     bool
	}{
		{"12.00000 EVT", 1200000, "EVT", true},
		{"1 EVT", 100000, "EVT", true},
		{"0.5", 50000, "EVT", true},
		{"0.000001 EVT", 0, "", false},
		{"-1 EVT", 0, "", false},
		{"1 evt", 0, "", false},
		{"abc EVT", 0, "", false},
		{"", 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			a, err := ParseAsset(tt.input)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.amount, a.Amount)
			assert.Equal(t, tt.symbol, a.Symbol)
		})
	}

	a, err := ParseAsset("12.3 EVT")
	require.NoError(t, err)
	assert.Equal(t, "12.30000 EVT", a.String())
}

func TestBlockIDTapos(t *testing.T) {
	var hash [32]byte
	for i := range hash {
		hash[i] = byte(i)
	}
	id := MakeBlockID(70000, hash)

	assert.Equal(t, uint32(70000), id.Num())
	assert.Equal(t, uint32(0x0b0a0908), id.Prefix())

	parsed, err := ParseBlockID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	trx := NewTransaction()
	trx.SetReferenceBlock(id)
	assert.Equal(t, uint16(70000&0xffff), trx.RefBlockNum)
	assert.True(t, trx.ReferencesBlock(id))
	assert.False(t, trx.ReferencesBlock(MakeBlockID(70001, hash)))

	assert.True(t, BlockRef("123").IsNum())
	assert.False(t, BlockRef(id.String()).IsNum())
}

func TestTimePointSec(t *testing.T) {
	base := time.Date(2018, 5, 10, 9, 45, 30, 500_000_000, time.UTC)
	tp := NewTimePointSec(base.Add(30 * time.Second))

	raw, err := json.Marshal(tp)
	require.NoError(t, err)
	assert.Equal(t, `"2018-05-10T09:46:00"`, string(raw))

	var back TimePointSec
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, tp, back)

	var head TimePoint
	require.NoError(t, json.Unmarshal([]byte(`"2018-05-10T09:45:30.500"`), &head))
	assert.True(t, head.Equal(base))
}

func TestPermissionJSON(t *testing.T) {
	_, pub := newKey(t)
	perm := Permission{
		Name:      "issue",
		Threshold: 1,
		Authorizers: []Authorizer{
			{Ref: KeyRef(pub), Weight: 1},
			{Ref: OwnerRef(), Weight: 1},
			{Ref: GroupRef("5QWdyYQxA2MNwfBuwT6Sx9"), Weight: 2},
		},
	}

	raw, err := json.Marshal(perm)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"[A] `+pub.String()+`"`)
	assert.Contains(t, string(raw), `"[G] .OWNER"`)

	var back Permission
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, perm, back)

	_, err = ParseAuthorizerRef("[X] nope")
	assert.Error(t, err)
}

func TestGroupValidate(t *testing.T) {
	_, manager := newKey(t)
	_, k1 := newKey(t)
	_, k2 := newKey(t)
	_, k3 := newKey(t)

	good := &Group{
		Name: "testgroup",
		Key:  manager,
		Root: BranchNode(3, 0,
			KeyNode(k1, 2),
			BranchNode(1, 1, KeyNode(k2, 1), KeyNode(k3, 1)),
		),
	}
	require.NoError(t, good.Validate())
	assert.Equal(t, []keys.PublicKey{k1, k2, k3}, good.Keys())
	assert.True(t, ValidGroupID(good.ID()))

	t.Run("unreachable threshold and zero weight", func(t *testing.T) {
		g := &Group{Key: manager, Root: BranchNode(5, 0, KeyNode(k1, 2), KeyNode(k2, 0))}
		err := g.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unreachable")
		assert.Contains(t, err.Error(), "weight must be positive")
	})

	t.Run("cycle", func(t *testing.T) {
		inner := BranchNode(1, 1, KeyNode(k1, 1))
		root := BranchNode(1, 0, inner)
		inner.Nodes = append(inner.Nodes, root)
		g := &Group{Key: manager, Root: root}
		err := g.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cycle")
	})

	t.Run("shared node", func(t *testing.T) {
		leaf := KeyNode(k1, 1)
		g := &Group{Key: manager, Root: BranchNode(1, 0, BranchNode(1, 1, leaf), BranchNode(1, 1, leaf))}
		err := g.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "shared")
	})

	t.Run("too deep", func(t *testing.T) {
		node := KeyNode(k1, 1)
		for i := 0; i < MaxGroupDepth; i++ {
			node = BranchNode(1, 1, node)
		}
		g := &Group{Key: manager, Root: node}
		err := g.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "depth")
	})

	t.Run("mixed variant", func(t *testing.T) {
		bad := &GroupNode{Key: k1, Weight: 1, Threshold: 1, Nodes: []*GroupNode{KeyNode(k2, 1)}}
		g := &Group{Key: manager, Root: BranchNode(1, 0, bad)}
		assert.Error(t, g.Validate())
	})
}

func TestGroupJSON(t *testing.T) {
	_, manager := newKey(t)
	_, k1 := newKey(t)
	doc := `{"name":"g","key":"` + manager.String() + `","root":{"threshold":1,"weight":0,"nodes":[{"key":"` + k1.String() + `","weight":1}]}}`

	var g Group
	require.NoError(t, json.Unmarshal([]byte(doc), &g))
	require.NoError(t, g.Validate())
	assert.Equal(t, NodeKey, g.Root.Nodes[0].Kind())
	assert.Equal(t, NodeBranch, g.Root.Kind())

	raw, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, doc, string(raw))
}

func TestActionRoundTrip(t *testing.T) {
	_, issuer := newKey(t)
	_, manager := newKey(t)
	_, k1 := newKey(t)
	asset, err := ParseAsset("1.5 EVT")
	require.NoError(t, err)

	payloads := []struct {
		domain, key Name128
		payload     Payload
	}{
		{ResourceDomain, "mydomain", &NewDomain{
			Name:     "mydomain",
			Issuer:   issuer,
			Issue:    Permission{Name: "issue", Threshold: 1, Authorizers: []Authorizer{{Ref: KeyRef(issuer), Weight: 1}}},
			Transfer: Permission{Name: "transfer", Threshold: 1, Authorizers: []Authorizer{{Ref: OwnerRef(), Weight: 1}}},
			Manage:   Permission{Name: "manage", Threshold: 1, Authorizers: []Authorizer{{Ref: KeyRef(issuer), Weight: 1}}},
		}},
		{ResourceDomain, "mydomain", &UpdateDomain{
			Name:   "mydomain",
			Manage: &Permission{Name: "manage", Threshold: 1, Authorizers: []Authorizer{{Ref: KeyRef(k1), Weight: 1}}},
		}},
		{"mydomain", IssueKey, &IssueToken{Domain: "mydomain", Names: []Name128{"t1", "t2"}, Owner: []keys.PublicKey{k1}}},
		{"mydomain", "t1", &Transfer{Domain: "mydomain", Name: "t1", To: []keys.PublicKey{issuer}}},
		{ResourceGroup, Name128(GroupIDFromKey(manager)), &NewGroup{ID: GroupIDFromKey(manager), Group: Group{
			Name: "g", Key: manager, Root: BranchNode(1, 0, KeyNode(k1, 1)),
		}}},
		{ResourceAccount, "alice", &NewAccount{Name: "alice", Owner: []keys.PublicKey{k1}}},
		{ResourceAccount, "alice", &UpdateOwner{Name: "alice", Owner: []keys.PublicKey{issuer}}},
		{ResourceAccount, "alice", &TransferEVT{From: "alice", To: "bob", Amount: asset}},
	}

	for _, tt := range payloads {
		t.Run(tt.payload.ActionName(), func(t *testing.T) {
			act, err := NewAction(tt.domain, tt.key, tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.payload.ActionName(), act.Name)

			// 经过 JSON 往返后仍能还原
			raw, err := json.Marshal(act)
			require.NoError(t, err)
			var back Action
			require.NoError(t, json.Unmarshal(raw, &back))

			decoded, err := back.Decode()
			require.NoError(t, err)
			assert.IsType(t, tt.payload, decoded)
			// 空切片与 nil 在二进制编码中无法区分，按 JSON 比较
			want, _ := json.Marshal(tt.payload)
			got, _ := json.Marshal(decoded)
			assert.JSONEq(t, string(want), string(got))
			assert.Equal(t, tt.domain, back.Domain)
			assert.Equal(t, tt.key, back.Key)
		})
	}

	_, err = Action{Name: "nope"}.Decode()
	assert.True(t, errors.Is(err, errno.ErrTransactionFormat))
}

func TestPackUnpack(t *testing.T) {
	priv, pub := newKey(t)
	act, err := NewAction(ResourceAccount, "alice", &NewAccount{Name: "alice", Owner: []keys.PublicKey{pub}})
	require.NoError(t, err)

	trx := NewTransaction(act)
	trx.SetExpiration(time.Unix(1_600_000_000, 0), 30*time.Second)
	trx.SetReferenceBlock(MakeBlockID(10, [32]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}))

	chainID := ChainID{0xaa}
	st := NewSignedTransaction(trx)
	require.NoError(t, st.Sign(priv, chainID))

	signers, err := st.SignatureKeys(chainID)
	require.NoError(t, err)
	assert.Equal(t, []keys.PublicKey{pub}, signers)

	for _, c := range []Compression{CompressionNone, CompressionZlib} {
		t.Run(string(c), func(t *testing.T) {
			packed, err := Pack(st, c)
			require.NoError(t, err)
			assert.Equal(t, c, packed.Compression)

			raw, err := json.Marshal(packed)
			require.NoError(t, err)
			var wire PackedTransaction
			require.NoError(t, json.Unmarshal(raw, &wire))

			back, err := wire.Unpack()
			require.NoError(t, err)

			wantID, _ := st.ID()
			gotID, _ := back.ID()
			assert.Equal(t, wantID, gotID)
			assert.Equal(t, st.Signatures, back.Signatures)
		})
	}

	_, err = ParseCompression("gzip")
	assert.Error(t, err)
}

func TestSignTransactionRequestWireFormat(t *testing.T) {
	_, pub := newKey(t)
	req := SignTransactionRequest{
		Transaction: *NewSignedTransaction(NewTransaction()),
		Keys:        []keys.PublicKey{pub},
		ChainID:     ChainID{1},
	}
	raw, err := json.Marshal(req)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "["))

	var back SignTransactionRequest
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, req.Keys, back.Keys)
	assert.Equal(t, req.ChainID, back.ChainID)
}

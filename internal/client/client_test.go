package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"evtc/pkg/chain/types"
	"evtc/pkg/errno"
	"evtc/pkg/keys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeClientGetBlock(t *testing.T) {
	id := types.MakeBlockID(42, [32]byte{9, 9, 9})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, types.PathGetBlock, r.URL.Path)
		var req types.GetBlockRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "42", req.BlockNumOrID)
		_ = json.NewEncoder(w).Encode(types.BlockResult{ID: id, BlockNum: 42})
	}))
	defer srv.Close()

	node := NewNodeClient(srv.URL, time.Second, nil)
	block, err := node.GetBlock(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, id, block.ID)
}

func TestConnectionErrorCarriesHint(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewNodeClient(url, time.Second, nil).GetInfo(context.Background())
	require.Error(t, err)
	assert.True(t, IsConnection(err))
	assert.Equal(t, "Failed to connect to evtd at "+url+"; is evtd running?", errno.Hint(err))

	_, err = NewWalletClient(url, time.Second, nil).GetPublicKeys(context.Background())
	assert.Equal(t, "Failed to connect to evtwd at "+url+"; is evtwd running?", errno.Hint(err))
}

func TestRemoteRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(types.ErrorResponse{
			Code:    500,
			Message: "Internal Service Error",
			Err: types.ErrorDetail{
				Code: 3090003,
				Name: "unsatisfied_authorization",
				What: "Provided keys, permissions, and delays do not satisfy declared authorizations",
				Details: []types.ErrorMessage{
					{Message: "transaction declares authority but does not have signatures for it"},
				},
			},
		})
	}))
	defer srv.Close()

	_, err := NewNodeClient(srv.URL, time.Second, nil).GetRequiredKeys(context.Background(), types.NewTransaction(), nil, types.ChainID{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errno.ErrRemoteRejection))
	assert.Contains(t, err.Error(), "do not satisfy")

	remote, ok := errno.Remote(err).(*types.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, "unsatisfied_authorization", remote.Err.Name)
}

func TestRemoteRejectionWithoutStructuredBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "wallet is locked", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewWalletClient(srv.URL, time.Second, nil).GetPublicKeys(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errno.ErrRemoteRejection))
	assert.Contains(t, err.Error(), "wallet is locked")
}

func TestWalletSignTransactionWireFormat(t *testing.T) {
	priv, err := keys.GeneratePrivateKey()
	require.NoError(t, err)
	pub := priv.PublicKey()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var parts []json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&parts))
		require.Len(t, parts, 3)

		var st types.SignedTransaction
		require.NoError(t, json.Unmarshal(parts[0], &st))
		require.NoError(t, st.Sign(priv, types.ChainID{}))
		_ = json.NewEncoder(w).Encode(st)
	}))
	defer srv.Close()

	st := types.NewSignedTransaction(types.NewTransaction())
	signed, err := NewWalletClient(srv.URL, time.Second, nil).SignTransaction(context.Background(), st, []keys.PublicKey{pub}, types.ChainID{})
	require.NoError(t, err)
	require.Len(t, signed.Signatures, 1)

	signers, err := signed.SignatureKeys(types.ChainID{})
	require.NoError(t, err)
	assert.Equal(t, pub, signers[0])
}

func TestPushTransactionsForwardsBodyUnmodified(t *testing.T) {
	body := json.RawMessage(`[{"signatures":[],"compression":"none","packed_trx":"c0"},{"signatures":[],"compression":"none","packed_trx":"c1"}]`)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var got json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.JSONEq(t, string(body), string(got))
		_, _ = w.Write([]byte(`[{"transaction_id":"a"},{"transaction_id":"b"}]`))
	}))
	defer srv.Close()

	out, err := NewNodeClient(srv.URL, time.Second, nil).PushTransactions(context.Background(), body)
	require.NoError(t, err)
	assert.Equal(t, `[{"transaction_id":"a"},{"transaction_id":"b"}]`, string(out))
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"evtc/internal/service/action"
	"evtc/internal/service/broadcaster"
	"evtc/internal/service/mocks"
	"evtc/internal/service/permission"
	"evtc/pkg/chain/types"
	"evtc/pkg/config"
	"evtc/pkg/errno"
	"evtc/pkg/keys"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testChainID = types.ChainID{0xab}
	headTime    = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	libID       = types.MakeBlockID(90, [32]byte{0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3, 4})
)

func testInfo() *types.InfoResult {
	return &types.InfoResult{
		ChainID:                  testChainID,
		HeadBlockNum:             92,
		LastIrreversibleBlockNum: 90,
		HeadBlockTime:            types.TimePoint{Time: headTime},
	}
}

func newTestService(t *testing.T) (*TransactionService, *mocks.MockNodeAPI, *mocks.MockWalletAPI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	node := mocks.NewMockNodeAPI(ctrl)
	wallet := mocks.NewMockWalletAPI(ctrl)
	return NewTransactionService(config.Default(), node, wallet, nil, nil), node, wallet
}

func genKey(t *testing.T) *keys.PrivateKey {
	t.Helper()
	k, err := keys.GeneratePrivateKey()
	require.NoError(t, err)
	return k
}

func TestPushCreateDomainDefaults(t *testing.T) {
	svc, node, wallet := newTestService(t)
	issuer := genKey(t)

	issue, transfer, manage, err := permission.DomainPermissions(issuer.PublicKey(), permission.Default, permission.Default, permission.Default)
	require.NoError(t, err)
	act, err := action.Encode(&types.NewDomain{
		Name:     "mydomain",
		Issuer:   issuer.PublicKey(),
		Issue:    issue,
		Transfer: transfer,
		Manage:   manage,
	})
	require.NoError(t, err)

	available := []keys.PublicKey{issuer.PublicKey()}
	var pushed *types.PackedTransaction

	gomock.InOrder(
		node.EXPECT().GetInfo(gomock.Any()).Return(testInfo(), nil),
		node.EXPECT().GetBlock(gomock.Any(), "90").Return(&types.BlockResult{ID: libID, BlockNum: 90}, nil),
		wallet.EXPECT().GetPublicKeys(gomock.Any()).Return(available, nil),
		node.EXPECT().GetRequiredKeys(gomock.Any(), gomock.Any(), available, testChainID).Return(available, nil),
		wallet.EXPECT().SignTransaction(gomock.Any(), gomock.Any(), available, testChainID).DoAndReturn(
			func(_ context.Context, st *types.SignedTransaction, _ []keys.PublicKey, id types.ChainID) (*types.SignedTransaction, error) {
				out := *st
				require.NoError(t, out.Sign(issuer, id))
				return &out, nil
			}),
		node.EXPECT().PushTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p *types.PackedTransaction) (json.RawMessage, error) {
				pushed = p
				return json.RawMessage(`{"transaction_id":"ok"}`), nil
			}),
	)

	opts, err := OptionsFromConfig(config.Default())
	require.NoError(t, err)
	res, err := svc.Push(context.Background(), opts, act)
	require.NoError(t, err)
	assert.Equal(t, broadcaster.ModePush, res.Mode)
	require.NotNil(t, pushed)
	assert.Equal(t, types.CompressionNone, pushed.Compression)

	st, err := pushed.Unpack()
	require.NoError(t, err)
	assert.True(t, st.ReferencesBlock(libID))
	assert.Equal(t, headTime.Add(30*time.Second), st.Expiration.Time())
	require.Len(t, st.Actions, 1)
	assert.Equal(t, types.Name128("domain"), st.Actions[0].Domain)
	assert.Equal(t, types.Name128("mydomain"), st.Actions[0].Key)

	payload, err := st.Actions[0].Decode()
	require.NoError(t, err)
	nd := payload.(*types.NewDomain)
	assert.Equal(t, types.KeyRef(issuer.PublicKey()), nd.Issue.Authorizers[0].Ref)
	assert.Equal(t, types.KeyRef(issuer.PublicKey()), nd.Manage.Authorizers[0].Ref)
	assert.Equal(t, types.OwnerRef(), nd.Transfer.Authorizers[0].Ref)

	signers, err := st.SignatureKeys(testChainID)
	require.NoError(t, err)
	assert.Equal(t, available, signers)
}

func TestPushUnknownRefBlockNeverCallsWallet(t *testing.T) {
	svc, node, _ := newTestService(t)

	node.EXPECT().GetInfo(gomock.Any()).Return(testInfo(), nil)
	node.EXPECT().GetBlock(gomock.Any(), "777777").Return(nil, errno.ErrRemoteRejection.New("unknown block"))

	_, err := svc.Push(context.Background(), Options{RefBlock: "777777"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errno.ErrInvalidRefBlock))
	assert.Contains(t, err.Error(), "777777")
}

func TestPushNoMatchingKeysNeverBroadcasts(t *testing.T) {
	svc, node, wallet := newTestService(t)

	node.EXPECT().GetInfo(gomock.Any()).Return(testInfo(), nil)
	node.EXPECT().GetBlock(gomock.Any(), "90").Return(&types.BlockResult{ID: libID}, nil)
	wallet.EXPECT().GetPublicKeys(gomock.Any()).Return([]keys.PublicKey{}, nil)
	node.EXPECT().GetRequiredKeys(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errno.ErrRemoteRejection.New("unsatisfied_authorization"))

	_, err := svc.Push(context.Background(), Options{})
	assert.True(t, errors.Is(err, errno.ErrRemoteRejection))
}

func TestPushSkipSignDontBroadcast(t *testing.T) {
	svc, node, _ := newTestService(t)

	node.EXPECT().GetInfo(gomock.Any()).Return(testInfo(), nil)
	node.EXPECT().GetBlock(gomock.Any(), "90").Return(&types.BlockResult{ID: libID}, nil)

	res, err := svc.Push(context.Background(), Options{SkipSign: true, DontBroadcast: true, Expiration: time.Hour})
	require.NoError(t, err)
	assert.Equal(t, broadcaster.ModeReturn, res.Mode)
	assert.Empty(t, res.Transaction.Signatures)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(res.Output, &out))
	assert.Equal(t, "2024-06-01T09:00:00", out["expiration"])
	assert.EqualValues(t, 90, out["ref_block_num"])
}

func TestPushSignedSkipsAssembly(t *testing.T) {
	svc, node, _ := newTestService(t)

	st := types.NewSignedTransaction(types.NewTransaction())
	node.EXPECT().PushTransaction(gomock.Any(), gomock.Any()).Return(json.RawMessage(`{}`), nil)

	_, err := svc.PushSigned(context.Background(), Options{Compression: types.CompressionZlib}, st)
	assert.NoError(t, err)
}

func TestOptionsFromConfigRejectsUnknownCompression(t *testing.T) {
	cfg := config.Default()
	cfg.Tx.Compression = "gzip"
	_, err := OptionsFromConfig(cfg)
	assert.True(t, errors.Is(err, errno.ErrParse))
}

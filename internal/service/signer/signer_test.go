package signer

import (
	"context"
	"errors"
	"testing"
	"time"

	"evtc/internal/service/assembler"
	"evtc/internal/service/mocks"
	"evtc/pkg/chain/types"
	"evtc/pkg/errno"
	"evtc/pkg/keys"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var chainID = types.ChainID{0xee}

func genKey(t *testing.T) *keys.PrivateKey {
	t.Helper()
	k, err := keys.GeneratePrivateKey()
	require.NoError(t, err)
	return k
}

func unsigned() *assembler.Unsigned {
	trx := types.NewTransaction()
	trx.SetExpiration(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Minute)
	trx.SetReferenceBlock(types.MakeBlockID(7, [32]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}))
	return &assembler.Unsigned{Trx: trx, ChainID: chainID}
}

// walletSigner 模拟钱包：用持有的私钥对交易签名
func walletSigner(privs ...*keys.PrivateKey) func(context.Context, *types.SignedTransaction, []keys.PublicKey, types.ChainID) (*types.SignedTransaction, error) {
	return func(_ context.Context, st *types.SignedTransaction, required []keys.PublicKey, id types.ChainID) (*types.SignedTransaction, error) {
		out := *st
		for _, pk := range required {
			for _, priv := range privs {
				if priv.PublicKey() == pk {
					if err := out.Sign(priv, id); err != nil {
						return nil, err
					}
				}
			}
		}
		return &out, nil
	}
}

func TestSignTwoHopOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, b := genKey(t), genKey(t)
	wallet := mocks.NewMockWalletAPI(ctrl)
	node := mocks.NewMockNodeAPI(ctrl)
	available := []keys.PublicKey{a.PublicKey(), b.PublicKey()}
	u := unsigned()

	gomock.InOrder(
		wallet.EXPECT().GetPublicKeys(gomock.Any()).Return(available, nil),
		node.EXPECT().GetRequiredKeys(gomock.Any(), u.Trx, available, chainID).Return([]keys.PublicKey{b.PublicKey()}, nil),
		wallet.EXPECT().SignTransaction(gomock.Any(), gomock.Any(), []keys.PublicKey{b.PublicKey()}, chainID).DoAndReturn(walletSigner(a, b)),
	)

	signed, err := New(wallet, node, nil).Sign(context.Background(), u)
	require.NoError(t, err)
	require.Len(t, signed.Signatures, 1)

	signers, err := signed.SignatureKeys(chainID)
	require.NoError(t, err)
	assert.Equal(t, b.PublicKey(), signers[0])
}

func TestSignNoMatchingKeysRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	wallet := mocks.NewMockWalletAPI(ctrl)
	node := mocks.NewMockNodeAPI(ctrl)

	wallet.EXPECT().GetPublicKeys(gomock.Any()).Return([]keys.PublicKey{}, nil)
	node.EXPECT().GetRequiredKeys(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errno.ErrRemoteRejection.New("unsatisfied_authorization"))

	_, err := New(wallet, node, nil).Sign(context.Background(), unsigned())
	assert.True(t, errors.Is(err, errno.ErrRemoteRejection))
}

func TestRequiredKeyOutsideWalletIsStale(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, other := genKey(t), genKey(t)
	node := mocks.NewMockNodeAPI(ctrl)
	node.EXPECT().GetRequiredKeys(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]keys.PublicKey{other.PublicKey()}, nil)

	s := New(mocks.NewMockWalletAPI(ctrl), node, nil)
	_, err := s.RequiredKeys(context.Background(), unsigned(), AvailableKeys{Keys: []keys.PublicKey{a.PublicKey()}})
	assert.True(t, errors.Is(err, errno.ErrStaleKeys))
}

func TestVerifyRequiredKeys(t *testing.T) {
	a, b := genKey(t), genKey(t)
	u := unsigned()
	digest, err := u.Trx.SigDigest(chainID)
	require.NoError(t, err)
	required := RequiredKeys{Keys: []keys.PublicKey{a.PublicKey()}, Digest: digest}

	t.Run("ok", func(t *testing.T) {
		st := types.NewSignedTransaction(u.Trx)
		require.NoError(t, st.Sign(a, chainID))
		assert.NoError(t, VerifyRequiredKeys(st, chainID, required))
	})

	t.Run("missing signature", func(t *testing.T) {
		st := types.NewSignedTransaction(u.Trx)
		assert.True(t, errors.Is(VerifyRequiredKeys(st, chainID, required), errno.ErrStaleKeys))
	})

	t.Run("unexpected signer", func(t *testing.T) {
		st := types.NewSignedTransaction(u.Trx)
		require.NoError(t, st.Sign(a, chainID))
		require.NoError(t, st.Sign(b, chainID))
		assert.True(t, errors.Is(VerifyRequiredKeys(st, chainID, required), errno.ErrStaleKeys))
	})

	t.Run("transaction changed", func(t *testing.T) {
		st := types.NewSignedTransaction(u.Trx)
		st.RefBlockNum++
		require.NoError(t, st.Sign(a, chainID))
		assert.True(t, errors.Is(VerifyRequiredKeys(st, chainID, required), errno.ErrStaleKeys))
	})
}

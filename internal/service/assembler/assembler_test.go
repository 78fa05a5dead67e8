package assembler

import (
	"context"
	"errors"
	"testing"
	"time"

	"evtc/internal/service/chainstate"
	"evtc/internal/service/mocks"
	"evtc/pkg/chain/types"
	"evtc/pkg/errno"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var headTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func chainInfo() *types.InfoResult {
	return &types.InfoResult{
		ChainID:                  types.ChainID{1, 2, 3},
		HeadBlockNum:             100,
		LastIrreversibleBlockNum: 98,
		HeadBlockTime:            types.TimePoint{Time: headTime},
	}
}

func TestAssembleAnchorsOnLIB(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	node := mocks.NewMockNodeAPI(ctrl)
	lib := types.MakeBlockID(98, [32]byte{0, 0, 0, 0, 1, 2, 3, 4, 0xaa, 0xbb, 0xcc, 0xdd})

	gomock.InOrder(
		node.EXPECT().GetInfo(gomock.Any()).Return(chainInfo(), nil),
		node.EXPECT().GetBlock(gomock.Any(), "98").Return(&types.BlockResult{ID: lib, BlockNum: 98}, nil),
	)

	u, err := New(chainstate.NewOracle(node, nil), nil).Assemble(context.Background(), nil, Options{})
	require.NoError(t, err)

	assert.Equal(t, lib, u.RefBlock)
	assert.True(t, u.Trx.ReferencesBlock(lib))
	assert.Equal(t, uint16(98), u.Trx.RefBlockNum)
	assert.Equal(t, uint32(0xddccbbaa), u.Trx.RefBlockPrefix)
	assert.Equal(t, headTime.Add(DefaultExpiration), u.Trx.Expiration.Time())
	assert.Equal(t, types.ChainID{1, 2, 3}, u.ChainID)
}

func TestAssembleExplicitRefBlockAndExpiration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	node := mocks.NewMockNodeAPI(ctrl)
	ref := types.MakeBlockID(42, [32]byte{9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9})

	node.EXPECT().GetInfo(gomock.Any()).Return(chainInfo(), nil)
	node.EXPECT().GetBlock(gomock.Any(), ref.String()).Return(&types.BlockResult{ID: ref, BlockNum: 42}, nil)

	u, err := New(chainstate.NewOracle(node, nil), nil).Assemble(context.Background(), nil, Options{
		Expiration: 5 * time.Minute,
		RefBlock:   ref.String(),
	})
	require.NoError(t, err)
	assert.True(t, u.Trx.ReferencesBlock(ref))
	assert.Equal(t, headTime.Add(5*time.Minute), u.Trx.Expiration.Time())
}

func TestAssembleUnknownRefBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	node := mocks.NewMockNodeAPI(ctrl)
	node.EXPECT().GetInfo(gomock.Any()).Return(chainInfo(), nil)
	node.EXPECT().GetBlock(gomock.Any(), "123456").Return(nil, errno.ErrRemoteRejection.New("block not found"))

	_, err := New(chainstate.NewOracle(node, nil), nil).Assemble(context.Background(), nil, Options{RefBlock: "123456"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errno.ErrInvalidRefBlock))
	assert.Contains(t, err.Error(), "123456")
}

func TestAssembleInfoFailureStopsEarly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	node := mocks.NewMockNodeAPI(ctrl)
	node.EXPECT().GetInfo(gomock.Any()).Return(nil, errno.ErrConnection.New("refused"))

	_, err := New(chainstate.NewOracle(node, nil), nil).Assemble(context.Background(), nil, Options{})
	assert.True(t, errors.Is(err, errno.ErrConnection))
}

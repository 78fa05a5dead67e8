package chainstate

import (
	"context"
	"errors"
	"testing"

	"evtc/internal/service/mocks"
	"evtc/pkg/chain/types"
	"evtc/pkg/errno"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceBlockDefaultsToLIB(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	node := mocks.NewMockNodeAPI(ctrl)
	lib := types.MakeBlockID(95, [32]byte{7})
	info := &types.InfoResult{HeadBlockNum: 100, LastIrreversibleBlockNum: 95}

	node.EXPECT().GetBlock(gomock.Any(), "95").Return(&types.BlockResult{ID: lib, BlockNum: 95}, nil)

	block, err := NewOracle(node, nil).ReferenceBlock(context.Background(), info, "")
	require.NoError(t, err)
	assert.Equal(t, lib, block.ID)
}

func TestReferenceBlockUnknown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	node := mocks.NewMockNodeAPI(ctrl)
	node.EXPECT().GetBlock(gomock.Any(), "99999").Return(nil, errno.ErrRemoteRejection.New("unknown block"))

	_, err := NewOracle(node, nil).ReferenceBlock(context.Background(), &types.InfoResult{}, "99999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errno.ErrInvalidRefBlock))
	assert.Contains(t, err.Error(), "99999")
}

func TestReferenceBlockConnectionErrorPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	node := mocks.NewMockNodeAPI(ctrl)
	node.EXPECT().GetBlock(gomock.Any(), "5").Return(nil, errno.ErrConnection.New("refused"))

	_, err := NewOracle(node, nil).ReferenceBlock(context.Background(), &types.InfoResult{}, "5")
	assert.True(t, errors.Is(err, errno.ErrConnection))
	assert.False(t, errors.Is(err, errno.ErrInvalidRefBlock))
}

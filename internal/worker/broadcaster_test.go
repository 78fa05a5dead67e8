package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"evtc/internal/event"
	"evtc/internal/service/mocks"
	"evtc/internal/service/mq"
	"evtc/pkg/chain/types"
	"evtc/pkg/errno"
	"evtc/pkg/keys"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queuedMessage(t *testing.T, nodeURL string) (*mq.Message, *event.TransactionQueuedEvent) {
	t.Helper()
	priv, err := keys.GeneratePrivateKey()
	require.NoError(t, err)

	trx := types.NewTransaction()
	trx.SetExpiration(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Minute)
	st := types.NewSignedTransaction(trx)
	require.NoError(t, st.Sign(priv, types.ChainID{}))

	packed, err := types.Pack(st, types.CompressionZlib)
	require.NoError(t, err)
	ev, err := event.NewTransactionQueuedEvent(packed, nodeURL, time.Now())
	require.NoError(t, err)
	payload, err := ev.Marshal()
	require.NoError(t, err)

	return &mq.Message{ID: "1-0", Topic: "evt.transactions", Key: ev.TransactionID.String(), Payload: payload}, ev
}

func TestHandlePushesQueuedTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	msg, ev := queuedMessage(t, "")
	node := mocks.NewMockNodeAPI(ctrl)
	node.EXPECT().PushTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p *types.PackedTransaction) (json.RawMessage, error) {
			assert.Equal(t, ev.Packed, p)
			return json.RawMessage(`{"transaction_id":"` + ev.TransactionID.String() + `"}`), nil
		})

	b := NewBroadcaster(node, nil, time.Second, nil)
	assert.NoError(t, b.Handle(context.Background(), msg))
}

func TestHandleKeepsMessageWhenNodeUnreachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	msg, _ := queuedMessage(t, "")
	node := mocks.NewMockNodeAPI(ctrl)
	node.EXPECT().PushTransaction(gomock.Any(), gomock.Any()).
		Return(nil, errno.ErrConnection.Wrap(errors.New("connection refused"), "http://localhost:8888"))

	err := NewBroadcaster(node, nil, time.Second, nil).Handle(context.Background(), msg)
	assert.True(t, errors.Is(err, errno.ErrConnection))
}

func TestHandleAcksRejectedTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	msg, _ := queuedMessage(t, "")
	node := mocks.NewMockNodeAPI(ctrl)
	node.EXPECT().PushTransaction(gomock.Any(), gomock.Any()).
		Return(nil, errno.ErrRemoteRejection.New("expired_tx_exception"))

	assert.NoError(t, NewBroadcaster(node, nil, time.Second, nil).Handle(context.Background(), msg))
}

func TestHandleDropsMalformedMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	node := mocks.NewMockNodeAPI(ctrl)
	b := NewBroadcaster(node, nil, time.Second, nil)

	assert.NoError(t, b.Handle(context.Background(), &mq.Message{ID: "1-0", Payload: []byte("not json")}))
	assert.NoError(t, b.Handle(context.Background(), &mq.Message{ID: "2-0", Payload: []byte(`{"transaction_id":""}`)}))
}

func TestHandleUsesEventNodeURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	def := mocks.NewMockNodeAPI(ctrl)
	other := mocks.NewMockNodeAPI(ctrl)
	other.EXPECT().PushTransaction(gomock.Any(), gomock.Any()).Return(json.RawMessage(`{}`), nil).Times(2)

	var dialed []string
	dial := func(url string) Pusher {
		dialed = append(dialed, url)
		return other
	}

	b := NewBroadcaster(def, dial, time.Second, nil)
	msg, _ := queuedMessage(t, "http://other:8888/")
	require.NoError(t, b.Handle(context.Background(), msg))
	require.NoError(t, b.Handle(context.Background(), msg))

	assert.Equal(t, []string{"http://other:8888"}, dialed)
}

type fakeConsumer struct {
	msgs  []*mq.Message
	acked []string
}

func (c *fakeConsumer) Subscribe(_ context.Context, _ string, handler func(msg *mq.Message) error) error {
	for _, m := range c.msgs {
		if err := handler(m); err == nil {
			c.acked = append(c.acked, m.ID)
		}
	}
	return nil
}

func (c *fakeConsumer) Close() error { return nil }

func TestRunAcksOnlyDeliveredMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ok, _ := queuedMessage(t, "")
	ok.ID = "1-0"
	down, _ := queuedMessage(t, "")
	down.ID = "2-0"

	node := mocks.NewMockNodeAPI(ctrl)
	gomock.InOrder(
		node.EXPECT().PushTransaction(gomock.Any(), gomock.Any()).Return(json.RawMessage(`{}`), nil),
		node.EXPECT().PushTransaction(gomock.Any(), gomock.Any()).Return(nil, errno.ErrConnection.New("down")),
	)

	consumer := &fakeConsumer{msgs: []*mq.Message{ok, down}}
	require.NoError(t, NewBroadcaster(node, nil, time.Second, nil).Run(context.Background(), consumer, "evt.transactions"))
	assert.Equal(t, []string{"1-0"}, consumer.acked)
}

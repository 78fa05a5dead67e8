package event

import (
	"encoding/json"
	"fmt"
	"time"

	"evtc/pkg/chain/types"
)

// TransactionQueuedEvent 入队等待广播的交易
// Topic: mq.topic (默认 evt.transactions)
type TransactionQueuedEvent struct {
	TransactionID types.TransactionID      `json:"transaction_id"`
	Packed        *types.PackedTransaction `json:"packed"`
	NodeURL       string                   `json:"node_url,omitempty"`
	QueuedAt      time.Time                `json:"queued_at"`
}

// NewTransactionQueuedEvent 打包后的交易，NodeURL 为空时由 worker 使用自己的配置
func NewTransactionQueuedEvent(packed *types.PackedTransaction, nodeURL string, now time.Time) (*TransactionQueuedEvent, error) {
	st, err := packed.Unpack()
	if err != nil {
		return nil, err
	}
	id, err := st.ID()
	if err != nil {
		return nil, err
	}
	return &TransactionQueuedEvent{
		TransactionID: id,
		Packed:        packed,
		NodeURL:       nodeURL,
		QueuedAt:      now.UTC(),
	}, nil
}

func (e *TransactionQueuedEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func DecodeTransactionQueued(data []byte) (*TransactionQueuedEvent, error) {
	var e TransactionQueuedEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	if e.Packed == nil {
		return nil, fmt.Errorf("queued event %s has no packed transaction", e.TransactionID)
	}
	return &e, nil
}

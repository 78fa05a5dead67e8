package types

import (
	"fmt"
	"reflect"

	"evtc/pkg/errno"

	"github.com/ethereum/go-ethereum/rlp"
)

// Action 对 (Domain, Key) 所指资源的一次操作，Data 为编码后的 payload
type Action struct {
	Name   string  `json:"name"`
	Domain Name128 `json:"domain"`
	Key    Name128 `json:"key"`
	Data   Bytes   `json:"data"`
}

// NewAction 编码 payload 并构造 action
func NewAction(domain, key Name128, payload Payload) (Action, error) {
	data, err := rlp.EncodeToBytes(payload)
	if err != nil {
		return Action{}, fmt.Errorf("encode %s: %w", payload.ActionName(), err)
	}
	return Action{
		Name:   payload.ActionName(),
		Domain: domain,
		Key:    key,
		Data:   data,
	}, nil
}

// Decode 按 action 名称解码 Data，返回指针类型的 payload
func (a Action) Decode() (Payload, error) {
	factory, ok := payloadFactories[a.Name]
	if !ok {
		return nil, errno.ErrTransactionFormat.New("unknown action %q", a.Name)
	}
	p := factory()
	if err := rlp.DecodeBytes(a.Data, p); err != nil {
		return nil, errno.ErrTransactionFormat.Wrap(err, "decode %s", a.Name)
	}
	return p, nil
}

// DecodeInto 解码到调用方给出的 payload 指针
func (a Action) DecodeInto(out Payload) error {
	if reflect.ValueOf(out).Kind() != reflect.Ptr {
		return fmt.Errorf("DecodeInto needs a pointer, got %T", out)
	}
	if out.ActionName() != a.Name {
		return errno.ErrTransactionFormat.New("action is %q, not %q", a.Name, out.ActionName())
	}
	if err := rlp.DecodeBytes(a.Data, out); err != nil {
		return errno.ErrTransactionFormat.Wrap(err, "decode %s", a.Name)
	}
	return nil
}

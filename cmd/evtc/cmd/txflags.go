package cmd

import (
	"time"

	"evtc/internal/service"
	"evtc/internal/service/action"
	"evtc/pkg/chain/types"

	"github.com/spf13/cobra"
)

// txFlags 所有会修改链上状态的命令共用的参数
type txFlags struct {
	expiration    uint
	skipSign      bool
	dontBroadcast bool
	refBlock      string
	compression   string
	queue         bool
}

func addTxFlags(cmd *cobra.Command) *txFlags {
	f := &txFlags{}
	fl := cmd.Flags()
	fl.UintVarP(&f.expiration, "expiration", "x", 0, "set the time in seconds before a transaction expires, defaults to 30s")
	fl.BoolVarP(&f.skipSign, "skip-sign", "s", false, "don't sign the transaction with unlocked wallet keys")
	fl.BoolVarP(&f.dontBroadcast, "dont-broadcast", "d", false, "don't broadcast transaction to the network (just print to stdout)")
	fl.StringVarP(&f.refBlock, "ref-block", "r", "", "set the reference block num or block id used for TAPOS")
	fl.StringVar(&f.compression, "compression", "", "packed transaction compression: none or zlib")
	fl.BoolVar(&f.queue, "queue", false, "publish the packed transaction to the message queue instead of pushing it")
	return f
}

// options 配置文件给出默认值，命令行参数覆盖
func (f *txFlags) options(rt *Runtime) (service.Options, error) {
	opts, err := service.OptionsFromConfig(rt.cfg)
	if err != nil {
		return opts, err
	}
	if f.expiration > 0 {
		opts.Expiration = time.Duration(f.expiration) * time.Second
	}
	if f.compression != "" {
		if opts.Compression, err = types.ParseCompression(f.compression); err != nil {
			return opts, err
		}
	}
	opts.RefBlock = f.refBlock
	opts.SkipSign = f.skipSign
	opts.DontBroadcast = f.dontBroadcast
	opts.Queue = f.queue
	return opts, nil
}

// pushPayloads 编码、组装、签名、广播，打印最终结果
func (rt *Runtime) pushPayloads(cmd *cobra.Command, f *txFlags, payloads ...types.Payload) error {
	acts := make([]types.Action, 0, len(payloads))
	for _, p := range payloads {
		a, err := action.Encode(p)
		if err != nil {
			return err
		}
		acts = append(acts, a)
	}

	opts, err := f.options(rt)
	if err != nil {
		return err
	}
	svc, err := rt.transactions(cmd.Context(), opts.Queue)
	if err != nil {
		return err
	}
	res, err := svc.Push(cmd.Context(), opts, acts...)
	if err != nil {
		return err
	}
	return rt.printJSON(res.Output)
}

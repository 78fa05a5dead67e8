package cmd

import (
	"encoding/json"

	"evtc/internal/service"
	"evtc/pkg/chain/types"
	"evtc/pkg/errno"
	"evtc/pkg/jsonutil"
	"evtc/pkg/keys"

	"github.com/spf13/cobra"
)

func newSignCmd(rt *Runtime) *cobra.Command {
	var (
		privKey string
		push    bool
		chainID string
	)
	cmd := &cobra.Command{
		Use:   "sign <transaction>",
		Short: "Sign a transaction",
		Long:  "Sign a transaction given as JSON or the name of a JSON file containing it, and print or push the result.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var st types.SignedTransaction
			if err := jsonutil.Load(args[0], &st, errno.ErrTransactionFormat); err != nil {
				return err
			}

			var chain types.ChainID
			if chainID != "" {
				id, err := types.ParseChecksum256(chainID)
				if err != nil {
					return errno.ErrParse.Wrap(err, "chain id")
				}
				chain = id
			}

			if privKey == "" {
				s, err := rt.secret("private key: ")
				if err != nil {
					return errno.ErrInvalidKey.Wrap(err, "read private key")
				}
				privKey = s
			}
			priv, err := keys.ParsePrivateKey(privKey)
			if err != nil {
				return err
			}
			if err := st.Sign(priv, chain); err != nil {
				return err
			}

			if !push {
				return rt.printJSON(&st)
			}
			return rt.pushSigned(cmd, &st)
		},
	}
	cmd.Flags().StringVarP(&privKey, "private-key", "k", "", "the private key that will be used to sign the transaction")
	cmd.Flags().BoolVarP(&push, "push-transaction", "p", false, "push transaction after signing")
	cmd.Flags().StringVar(&chainID, "chain-id", "", "chain id to sign for, defaults to the zero chain id")
	return cmd
}

// pushSigned 以不压缩的方式提交已签名交易
func (rt *Runtime) pushSigned(cmd *cobra.Command, st *types.SignedTransaction) error {
	svc, err := rt.transactions(cmd.Context(), false)
	if err != nil {
		return err
	}
	res, err := svc.PushSigned(cmd.Context(), pushOptions(), st)
	if err != nil {
		return err
	}
	return rt.printJSON(res.Output)
}

// pushOptions 手工提交的交易一律不压缩，也不经过消息队列
func pushOptions() service.Options {
	return service.Options{Compression: types.CompressionNone}
}

func newPushCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{Use: "push", Short: "Push arbitrary transactions to the blockchain"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "transaction <transaction>",
			Short: "Push an arbitrary JSON transaction",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var st types.SignedTransaction
				if err := jsonutil.Load(args[0], &st, errno.ErrTransactionFormat); err != nil {
					return err
				}
				return rt.pushSigned(cmd, &st)
			},
		},
		&cobra.Command{
			Use:   "transactions <transactions>",
			Short: "Push an array of arbitrary JSON transactions",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				raw, err := jsonutil.LoadRaw(args[0])
				if err != nil {
					return errno.ErrTransactionFormat.Wrap(err, "fail to parse transaction JSON")
				}
				var list []json.RawMessage
				if err := json.Unmarshal(raw, &list); err != nil {
					return errno.ErrTransactionFormat.Wrap(err, "expected a JSON array of transactions")
				}

				svc, err := rt.transactions(cmd.Context(), false)
				if err != nil {
					return err
				}
				out, err := svc.PushBatch(cmd.Context(), raw)
				if err != nil {
					return err
				}
				return rt.printJSON(out)
			},
		},
	)
	return cmd
}

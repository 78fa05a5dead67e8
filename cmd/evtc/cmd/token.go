package cmd

import (
	"evtc/pkg/chain/types"
	"evtc/pkg/keys"

	"github.com/spf13/cobra"
)

func newTokenCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{Use: "token", Short: "Issue or transfer tokens"}
	cmd.AddCommand(newTokenIssueCmd(rt), newTokenTransferCmd(rt))
	return cmd
}

func newTokenIssueCmd(rt *Runtime) *cobra.Command {
	var (
		f     *txFlags
		names []string
	)
	cmd := &cobra.Command{
		Use:   "issue <domain> -n <names...> <owner...>",
		Short: "Issue new tokens in specific domain",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, err := types.ParseName(args[0])
			if err != nil {
				return err
			}
			tokens, err := types.ParseNames(names)
			if err != nil {
				return err
			}
			owner, err := keys.ParsePublicKeys(args[1:])
			if err != nil {
				return err
			}
			return rt.pushPayloads(cmd, f, &types.IssueToken{Domain: domain, Names: tokens, Owner: owner})
		},
	}
	cmd.Flags().StringSliceVarP(&names, "names", "n", nil, "names of tokens will be issued")
	_ = cmd.MarkFlagRequired("names")
	f = addTxFlags(cmd)
	return cmd
}

func newTokenTransferCmd(rt *Runtime) *cobra.Command {
	var f *txFlags
	cmd := &cobra.Command{
		Use:   "transfer <domain> <name> <to...>",
		Short: "Transfer token",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, err := types.ParseName(args[0])
			if err != nil {
				return err
			}
			name, err := types.ParseName(args[1])
			if err != nil {
				return err
			}
			to, err := keys.ParsePublicKeys(args[2:])
			if err != nil {
				return err
			}
			return rt.pushPayloads(cmd, f, &types.Transfer{Domain: domain, Name: name, To: to})
		},
	}
	f = addTxFlags(cmd)
	return cmd
}

package cmd

import (
	"evtc/pkg/chain/types"
	"evtc/pkg/keys"

	"github.com/spf13/cobra"
)

func newAccountCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{Use: "account", Short: "Create or update account and transfer EVT between accounts"}
	cmd.AddCommand(newAccountCreateCmd(rt), newAccountTransferCmd(rt), newAccountUpdateCmd(rt))
	return cmd
}

func newAccountCreateCmd(rt *Runtime) *cobra.Command {
	var f *txFlags
	cmd := &cobra.Command{
		Use:   "create <name> <owner...>",
		Short: "Create new account",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := types.ParseName(args[0])
			if err != nil {
				return err
			}
			owner, err := keys.ParsePublicKeys(args[1:])
			if err != nil {
				return err
			}
			return rt.pushPayloads(cmd, f, &types.NewAccount{Name: name, Owner: owner})
		},
	}
	f = addTxFlags(cmd)
	return cmd
}

func newAccountTransferCmd(rt *Runtime) *cobra.Command {
	var f *txFlags
	cmd := &cobra.Command{
		Use:   "transfer <from> <to> <amount>",
		Short: "Transfer EVT between accounts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := types.ParseNames(args[:2])
			if err != nil {
				return err
			}
			amount, err := types.ParseAsset(args[2])
			if err != nil {
				return err
			}
			return rt.pushPayloads(cmd, f, &types.TransferEVT{From: names[0], To: names[1], Amount: amount})
		},
	}
	f = addTxFlags(cmd)
	return cmd
}

func newAccountUpdateCmd(rt *Runtime) *cobra.Command {
	var f *txFlags
	cmd := &cobra.Command{
		Use:   "update <name> <owner...>",
		Short: "Update owner for specific account",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := types.ParseName(args[0])
			if err != nil {
				return err
			}
			owner, err := keys.ParsePublicKeys(args[1:])
			if err != nil {
				return err
			}
			return rt.pushPayloads(cmd, f, &types.UpdateOwner{Name: name, Owner: owner})
		},
	}
	f = addTxFlags(cmd)
	return cmd
}

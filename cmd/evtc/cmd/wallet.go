package cmd

import (
	"encoding/json"

	"evtc/pkg/chain/types"
	"evtc/pkg/errno"
	"evtc/pkg/keys"
	"evtc/pkg/kms"

	"github.com/spf13/cobra"
)

func newWalletCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{Use: "wallet", Short: "Interact with local wallet"}
	cmd.AddCommand(
		rt.walletNameCmd("create", "Create a new wallet locally", types.PathWalletCreate, func(name string, out json.RawMessage) error {
			rt.println("Creating wallet: %s", name)
			rt.println("Save password to use in the future to unlock this wallet.")
			rt.println("Without password imported keys will not be retrievable.")
			return rt.printJSON(out)
		}),
		rt.walletNameCmd("open", "Open an existing wallet", types.PathWalletOpen, func(name string, _ json.RawMessage) error {
			rt.println("Opened: %s", name)
			return nil
		}),
		rt.walletNameCmd("lock", "Lock wallet", types.PathWalletLock, func(name string, _ json.RawMessage) error {
			rt.println("Locked: %s", name)
			return nil
		}),
		&cobra.Command{
			Use:   "lock_all",
			Short: "Lock all unlocked wallets",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := rt.wallet.Call(cmd.Context(), types.PathWalletLockAll, nil); err != nil {
					return err
				}
				rt.println("Locked All Wallets")
				return nil
			},
		},
		newWalletUnlockCmd(rt),
		newWalletImportCmd(rt),
		&cobra.Command{
			Use:   "list",
			Short: "List opened wallets, * = unlocked",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := rt.wallet.Call(cmd.Context(), types.PathWalletList, nil)
				if err != nil {
					return err
				}
				rt.println("Wallets:")
				return rt.printJSON(out)
			},
		},
		&cobra.Command{
			Use:   "keys",
			Short: "List of private keys from all unlocked wallets in wif format",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := rt.wallet.Call(cmd.Context(), types.PathWalletListKeys, nil)
				if err != nil {
					return err
				}
				return rt.printJSON(out)
			},
		},
	)
	return cmd
}

// walletNameCmd 请求体只有钱包名的子命令
func (rt *Runtime) walletNameCmd(use, short, path string, done func(name string, out json.RawMessage) error) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := rt.wallet.Call(cmd.Context(), path, name)
			if err != nil {
				return err
			}
			return done(name, out)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", kms.DefaultWallet, "the name of the wallet")
	return cmd
}

func newWalletUnlockCmd(rt *Runtime) *cobra.Command {
	var name, password string
	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Unlock wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				pw, err := rt.secret("password: ")
				if err != nil {
					return errno.ErrParse.Wrap(err, "read password")
				}
				password = pw
			}
			if _, err := rt.wallet.Call(cmd.Context(), types.PathWalletUnlock, []string{name, password}); err != nil {
				return err
			}
			rt.println("Unlocked: %s", name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", kms.DefaultWallet, "the name of the wallet to unlock")
	cmd.Flags().StringVar(&password, "password", "", "the password returned by wallet create")
	return cmd
}

func newWalletImportCmd(rt *Runtime) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "import <key>",
		Short: "Import private key into wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := keys.ParsePrivateKey(args[0])
			if err != nil {
				return err
			}
			if _, err := rt.wallet.Call(cmd.Context(), types.PathWalletImportKey, []string{name, args[0]}); err != nil {
				return err
			}
			rt.println("imported private key for: %s", priv.PublicKey())
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", kms.DefaultWallet, "the name of the wallet to import key into")
	return cmd
}

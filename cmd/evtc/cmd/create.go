package cmd

import (
	"evtc/pkg/keys"

	"github.com/spf13/cobra"
)

func newCreateCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{Use: "create", Short: "Create various items, on and off the blockchain"}

	var (
		mnemonic   bool
		words      string
		passphrase string
	)
	key := &cobra.Command{
		Use:   "key",
		Short: "Create a new keypair and print the public and private keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				priv *keys.PrivateKey
				err  error
			)
			switch {
			case words != "":
				priv, err = keys.FromMnemonic(words, passphrase, keys.DefaultPath)
			case mnemonic:
				// 24 个助记词
				if words, err = keys.NewMnemonic(256); err != nil {
					return err
				}
				rt.println("Mnemonic: %s", words)
				priv, err = keys.FromMnemonic(words, passphrase, keys.DefaultPath)
			default:
				priv, err = keys.GeneratePrivateKey()
			}
			if err != nil {
				return err
			}

			rt.println("Private key: %s", priv)
			rt.println("Public key: %s", priv.PublicKey())
			return nil
		},
	}
	key.Flags().BoolVar(&mnemonic, "mnemonic", false, "generate a BIP-39 mnemonic and derive the key from it")
	key.Flags().StringVar(&words, "from-mnemonic", "", "derive the key from an existing BIP-39 mnemonic")
	key.Flags().StringVar(&passphrase, "passphrase", "", "optional BIP-39 passphrase")

	cmd.AddCommand(key)
	return cmd
}

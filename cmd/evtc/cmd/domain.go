package cmd

import (
	"evtc/internal/service/permission"
	"evtc/pkg/chain/types"
	"evtc/pkg/keys"

	"github.com/spf13/cobra"
)

func newDomainCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{Use: "domain", Short: "Create or update a domain"}
	cmd.AddCommand(newDomainCreateCmd(rt), newDomainUpdateCmd(rt))
	return cmd
}

func newDomainCreateCmd(rt *Runtime) *cobra.Command {
	var f *txFlags
	cmd := &cobra.Command{
		Use:   "create <name> <issuer> [issue] [transfer] [manage]",
		Short: "Create new domain",
		Long: `Create new domain. Each permission is a JSON string or filename; "default" gives
threshold 1 with a single authorizer: the issuer for issue and manage, the owner group for transfer.`,
		Args: cobra.RangeArgs(2, 5),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := types.ParseName(args[0])
			if err != nil {
				return err
			}
			issuer, err := keys.ParsePublicKey(args[1])
			if err != nil {
				return err
			}

			perms := []string{permission.Default, permission.Default, permission.Default}
			copy(perms, args[2:])
			issue, transfer, manage, err := permission.DomainPermissions(issuer, perms[0], perms[1], perms[2])
			if err != nil {
				return err
			}

			return rt.pushPayloads(cmd, f, &types.NewDomain{
				Name:     name,
				Issuer:   issuer,
				Issue:    issue,
				Transfer: transfer,
				Manage:   manage,
			})
		},
	}
	f = addTxFlags(cmd)
	return cmd
}

func newDomainUpdateCmd(rt *Runtime) *cobra.Command {
	var (
		f                       *txFlags
		issue, transfer, manage string
	)
	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Update existing domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := types.ParseName(args[0])
			if err != nil {
				return err
			}

			// 未给出或为 default 的权限保持不变
			var zero keys.PublicKey
			ud := &types.UpdateDomain{Name: name}
			if ud.Issue, err = permission.ResolveOptional(issue, permission.Issue, zero); err != nil {
				return err
			}
			if ud.Transfer, err = permission.ResolveOptional(transfer, permission.Transfer, zero); err != nil {
				return err
			}
			if ud.Manage, err = permission.ResolveOptional(manage, permission.Manage, zero); err != nil {
				return err
			}
			return rt.pushPayloads(cmd, f, ud)
		},
	}
	cmd.Flags().StringVarP(&issue, "issue", "i", permission.Default, "JSON string or filename defining ISSUE permission")
	cmd.Flags().StringVarP(&transfer, "transfer", "t", permission.Default, "JSON string or filename defining TRANSFER permission")
	cmd.Flags().StringVarP(&manage, "manage", "m", permission.Default, "JSON string or filename defining MANAGE permission")
	f = addTxFlags(cmd)
	return cmd
}

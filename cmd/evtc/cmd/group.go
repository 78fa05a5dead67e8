package cmd

import (
	"evtc/internal/service/permission"
	"evtc/pkg/chain/types"
	"evtc/pkg/errno"
	"evtc/pkg/keys"

	"github.com/spf13/cobra"
)

func newGroupCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{Use: "group", Short: "Create or update permission groups"}
	cmd.AddCommand(newGroupCreateCmd(rt), newGroupUpdateCmd(rt), newGroupGetIDCmd(rt))
	return cmd
}

func newGroupCreateCmd(rt *Runtime) *cobra.Command {
	var f *txFlags
	cmd := &cobra.Command{
		Use:   "create <json>",
		Short: "Create new group; its id is derived from the group key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := permission.LoadGroup(args[0])
			if err != nil {
				return err
			}
			return rt.pushPayloads(cmd, f, &types.NewGroup{ID: g.ID(), Group: *g})
		},
	}
	f = addTxFlags(cmd)
	return cmd
}

func newGroupUpdateCmd(rt *Runtime) *cobra.Command {
	var (
		f   *txFlags
		key string
	)
	cmd := &cobra.Command{
		Use:   "update [id] <json>",
		Short: "Update specific permission group, id or key must provide at least one",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			if len(args) == 2 {
				id = args[0]
			}
			id, err := permission.ResolveGroupID(id, key)
			if err != nil {
				return err
			}
			g, err := permission.LoadGroup(args[len(args)-1])
			if err != nil {
				return err
			}
			return rt.pushPayloads(cmd, f, &types.UpdateGroup{ID: id, Group: *g})
		},
	}
	cmd.Flags().StringVarP(&key, "key", "k", "", "key of permission group to be updated")
	f = addTxFlags(cmd)
	return cmd
}

func newGroupGetIDCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "getid <key>",
		Short: "Get group id from group key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, err := keys.ParsePublicKey(args[0])
			if err != nil {
				return err
			}
			if pk.IsZero() {
				return errno.ErrInvalidKey.New("group key is the zero key")
			}
			rt.println("Group id: %s", types.GroupIDFromKey(pk))
			return nil
		},
	}
}

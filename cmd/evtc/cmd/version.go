package cmd

import (
	"evtc/pkg/version"

	"github.com/spf13/cobra"
)

func newVersionCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{Use: "version", Short: "Retrieve version information"}
	cmd.AddCommand(&cobra.Command{
		Use:   "client",
		Short: "Retrieve version information of the client",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rt.println("Build version: %s", version.Version)
		},
	})
	return cmd
}

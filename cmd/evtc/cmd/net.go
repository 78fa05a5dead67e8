package cmd

import (
	"evtc/pkg/chain/types"

	"github.com/spf13/cobra"
)

func newNetCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{Use: "net", Short: "Interact with local p2p network connections"}
	host := func(path string) func(args []string) (string, interface{}, error) {
		return func(args []string) (string, interface{}, error) {
			return path, args[0], nil
		}
	}
	cmd.AddCommand(
		rt.queryCmd("connect <host>", "start a new connection to a peer", 1, host(types.PathNetConnect)),
		rt.queryCmd("disconnect <host>", "close an existing connection", 1, host(types.PathNetDisconnect)),
		rt.queryCmd("status <host>", "status of existing connection", 1, host(types.PathNetStatus)),
		rt.queryCmd("peers", "status of all existing peers", 0, func(args []string) (string, interface{}, error) {
			return types.PathNetConnections, nil, nil
		}),
	)
	return cmd
}

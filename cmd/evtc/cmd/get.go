package cmd

import (
	"encoding/json"
	"strconv"

	"evtc/internal/service/permission"
	"evtc/pkg/chain/types"
	"evtc/pkg/errno"

	"github.com/spf13/cobra"
)

func newGetCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{Use: "get", Short: "Retrieve various items and information from the blockchain"}
	cmd.AddCommand(
		rt.queryCmd("info", "Get current blockchain information", 0, func(args []string) (string, interface{}, error) {
			return types.PathGetInfo, nil, nil
		}),
		rt.queryCmd("block <block>", "Retrieve a full block from the blockchain", 1, func(args []string) (string, interface{}, error) {
			return types.PathGetBlock, types.GetBlockRequest{BlockNumOrID: args[0]}, nil
		}),
		rt.queryCmd("transaction <id>", "Retrieve a transaction from the blockchain", 1, func(args []string) (string, interface{}, error) {
			id, err := types.ParseChecksum256(args[0])
			if err != nil {
				return "", nil, err
			}
			return types.PathGetTransaction, types.GetTransactionRequest{TransactionID: id}, nil
		}),
		newGetTransactionsCmd(rt),
		rt.queryCmd("domain <name>", "Retrieve a domain information", 1, func(args []string) (string, interface{}, error) {
			name, err := types.ParseName(args[0])
			if err != nil {
				return "", nil, err
			}
			return types.PathGetDomain, types.GetDomainRequest{Name: name}, nil
		}),
		rt.queryCmd("token <domain> <name>", "Retrieve a token information", 2, func(args []string) (string, interface{}, error) {
			names, err := types.ParseNames(args)
			if err != nil {
				return "", nil, err
			}
			return types.PathGetToken, types.GetTokenRequest{Domain: names[0], Name: names[1]}, nil
		}),
		newGetGroupCmd(rt),
		rt.queryCmd("account <name>", "Retrieve an account information", 1, func(args []string) (string, interface{}, error) {
			name, err := types.ParseName(args[0])
			if err != nil {
				return "", nil, err
			}
			return types.PathGetAccount, types.GetAccountRequest{Name: name}, nil
		}),
	)
	return cmd
}

// queryCmd 只读查询：把请求体发到节点，原样打印响应
func (rt *Runtime) queryCmd(use, short string, nargs int, req func(args []string) (string, interface{}, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, body, err := req(args)
			if err != nil {
				return err
			}
			out, err := rt.node.Call(cmd.Context(), path, body)
			if err != nil {
				return err
			}
			return rt.printJSON(out)
		},
	}
}

func newGetTransactionsCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "transactions <account_name> [skip_seq] [num_seq]",
		Short: "Retrieve all transactions with specific account name referenced in their scope",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := types.ParseName(args[0])
			if err != nil {
				return err
			}
			req := types.GetTransactionsRequest{AccountName: name}
			nums := []*int{&req.Skip, &req.Num}
			for i, s := range args[1:] {
				n, err := strconv.Atoi(s)
				if err != nil || n < 0 {
					return errno.ErrParse.New("%q is not a non-negative number", s)
				}
				*nums[i] = n
			}

			out, err := rt.node.Call(cmd.Context(), types.PathGetTransactions, req)
			if err != nil {
				return err
			}
			if err := rt.printJSON(out); err != nil {
				return err
			}

			var res types.TransactionsResult
			if err := json.Unmarshal(out, &res); err != nil {
				return errno.ErrParse.Wrap(err, "decode transactions")
			}
			for _, t := range res.Transactions {
				rt.println("%d] %s  %s", t.SeqNum, t.TransactionID, t.Transaction.Data.Expiration)
			}
			return nil
		},
	}
}

func newGetGroupCmd(rt *Runtime) *cobra.Command {
	var id, key string
	cmd := &cobra.Command{
		Use:   "group [id]",
		Short: "Retrieve a permission group information",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				id = args[0]
			}
			gid, err := permission.ResolveGroupID(id, key)
			if err != nil {
				return err
			}
			if id == "" {
				rt.println("Group id: %s", gid)
			}

			out, err := rt.node.Call(cmd.Context(), types.PathGetGroup, types.GetGroupRequest{ID: gid})
			if err != nil {
				return err
			}
			return rt.printJSON(out)
		},
	}
	cmd.Flags().StringVarP(&id, "id", "i", "", "id of group to be retrieved")
	cmd.Flags().StringVarP(&key, "key", "k", "", "key of group to be retrieved")
	return cmd
}

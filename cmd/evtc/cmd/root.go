package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"evtc/internal/client"
	"evtc/internal/service"
	"evtc/internal/service/mq"
	"evtc/pkg/chain/types"
	"evtc/pkg/config"
	"evtc/pkg/errno"
	"evtc/pkg/jsonutil"
	"evtc/pkg/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Runtime 一次命令调用所需的全部依赖，测试中替换输入输出
type Runtime struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
	// ReadSecret 读取不回显的口令，为 nil 时从终端读取
	ReadSecret func(prompt string) (string, error)

	cfg      *config.Config
	node     *client.NodeClient
	wallet   *client.WalletClient
	producer mq.Producer
	log      *zap.Logger
}

type globalFlags struct {
	config    string
	url       string
	walletURL string
	verbose   bool
}

// setup 在参数解析完成之后执行：加载配置，命令行参数覆盖配置值
func (rt *Runtime) setup(g *globalFlags) error {
	cfg, err := config.Load(g.config)
	if err != nil {
		return errno.ErrParse.Wrap(err, "load config")
	}
	if g.url != "" {
		cfg.Node.URL = g.url
	}
	if g.walletURL != "" {
		cfg.Wallet.URL = g.walletURL
	}
	cfg.App.Verbose = cfg.App.Verbose || g.verbose

	logger.Init(cfg.App.Env, cfg.App.Verbose)
	rt.log = logger.Log
	rt.cfg = cfg
	rt.node = client.NewNodeClient(cfg.Node.URL, cfg.Node.Timeout, rt.log)
	rt.wallet = client.NewWalletClient(cfg.Wallet.URL, cfg.Wallet.Timeout, rt.log)
	return nil
}

// transactions 按需创建消息队列生产者，只有 --queue 时才连接 Redis/Kafka
func (rt *Runtime) transactions(ctx context.Context, queue bool) (*service.TransactionService, error) {
	if queue && rt.producer == nil {
		p, err := mq.NewProducer(ctx, rt.cfg, rt.log)
		if err != nil {
			return nil, err
		}
		rt.producer = p
	}
	return service.NewTransactionService(rt.cfg, rt.node, rt.wallet, rt.producer, rt.log), nil
}

func (rt *Runtime) close() {
	if rt.producer != nil {
		_ = rt.producer.Close()
	}
	logger.Sync()
}

// printJSON 两个空格缩进输出到 stdout
func (rt *Runtime) printJSON(v interface{}) error {
	out, err := jsonutil.Pretty(v)
	if err != nil {
		return errno.ErrParse.Wrap(err, "format output")
	}
	_, err = fmt.Fprintln(rt.Out, string(out))
	return err
}

func (rt *Runtime) println(format string, args ...interface{}) {
	fmt.Fprintf(rt.Out, format+"\n", args...)
}

func (rt *Runtime) secret(prompt string) (string, error) {
	if rt.ReadSecret != nil {
		return rt.ReadSecret(prompt)
	}
	fmt.Fprint(rt.Err, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(rt.Err)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// printError 一行红色诊断信息；verbose 时附带远端结构化错误
func (rt *Runtime) printError(err error) {
	red := color.New(color.FgRed)
	if f, ok := rt.Err.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		red.DisableColor()
	}

	verbose := rt.cfg != nil && rt.cfg.App.Verbose
	if hint := errno.Hint(err); hint != "" {
		red.Fprintln(rt.Err, hint)
		if verbose {
			fmt.Fprintf(rt.Err, "connect error: %v\n", err)
		}
		return
	}

	red.Fprintf(rt.Err, "Error: %v\n", err)
	if !verbose {
		return
	}
	if remote, ok := errno.Remote(err).(*types.ErrorResponse); ok && remote != nil {
		if out, jerr := json.MarshalIndent(remote, "", "  "); jerr == nil {
			fmt.Fprintln(rt.Err, string(out))
		}
	}
}

// NewRootCmd 构造完整的命令树
func NewRootCmd(rt *Runtime) *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "evtc",
		Short:         "Command line client for the EVT ledger node (evtd) and wallet (evtwd)",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.setup(g)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.config, "config", "", "config file (default "+config.DefaultPath+")")
	pf.StringVarP(&g.url, "url", "u", "", "the http/https URL where evtd is running")
	pf.StringVar(&g.walletURL, "wallet-url", "", "the http/https URL where evtwd is running")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "output verbose actions on error")

	root.AddCommand(
		newVersionCmd(rt),
		newCreateCmd(rt),
		newGetCmd(rt),
		newNetCmd(rt),
		newDomainCmd(rt),
		newTokenCmd(rt),
		newGroupCmd(rt),
		newAccountCmd(rt),
		newWalletCmd(rt),
		newSignCmd(rt),
		newPushCmd(rt),
	)
	return root
}

// Run 执行一次命令并返回进程退出码
func Run(rt *Runtime, args []string) int {
	root := NewRootCmd(rt)
	root.SetArgs(args)
	root.SetIn(rt.In)
	root.SetOut(rt.Out)
	root.SetErr(rt.Err)

	err := root.Execute()
	if err != nil {
		rt.printError(err)
	}
	rt.close()
	return errno.ExitCode(err)
}

// Execute 命令行入口
func Execute() {
	os.Exit(Run(&Runtime{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}, os.Args[1:]))
}

package main

import (
	"fmt"
	"os"

	"evtc/internal/devnet"
	"evtc/internal/server"
	"evtc/pkg/config"
	"evtc/pkg/kms"
	"evtc/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var (
		cfgPath  string
		verbose  bool
		accounts []string
	)

	cmd := &cobra.Command{
		Use:   "evt-devnet",
		Short: "Run an in-memory ledger node (evtd) and wallet service (evtwd) for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 0. 初始化 Config
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			// 1. 初始化 Logger
			logger.Init(cfg.App.Env, verbose || cfg.App.Verbose)
			defer logger.Sync()

			// 2. 创世参数
			chainID, err := devnet.ChainIDFromConfig(cfg.Devnet.ChainID)
			if err != nil {
				return fmt.Errorf("devnet.chain_id: %w", err)
			}
			opts := devnet.Options{ChainID: chainID, LibLag: cfg.Devnet.LibLag}
			for _, s := range accounts {
				acc, err := devnet.ParseGenesisAccount(s)
				if err != nil {
					return err
				}
				opts.Accounts = append(opts.Accounts, acc)
			}

			// 3. 账本与钱包
			ledger := devnet.NewLedger(opts, logger.Log)
			wallet := devnet.NewWalletHandler(kms.NewLocalKMS(), logger.Log)

			logger.Info("devnet ready",
				zap.Stringer("chain_id", chainID),
				zap.Uint32("lib_lag", opts.LibLag),
				zap.Int("genesis_accounts", len(opts.Accounts)))

			// 4. 启动应用
			app, err := server.New(server.Config{
				HttpPort:   cfg.Devnet.HttpPort,
				WalletPort: cfg.Devnet.WalletPort,
				GrpcPort:   cfg.Devnet.GrpcPort,
			}, server.NewNodeRouter(ledger, logger.Log), server.NewWalletRouter(wallet, logger.Log))
			if err != nil {
				return err
			}

			// 运行 (阻塞)
			app.Run()
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "config file (default "+config.DefaultPath+")")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every request")
	cmd.Flags().StringArrayVar(&accounts, "account", nil, "genesis account as name:KEY1,KEY2[:amount], repeatable")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

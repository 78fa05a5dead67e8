package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"evtc/internal/client"
	"evtc/internal/service/mq"
	"evtc/internal/worker"
	"evtc/pkg/config"
	"evtc/pkg/logger"
	"evtc/pkg/monitor"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// broadcaster-worker 消费 evtc --queue 写入的交易并提交到节点
func main() {
	var (
		cfgPath string
		name    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "broadcaster-worker",
		Short: "Push transactions queued by evtc --queue to the ledger node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			logger.Init(cfg.App.Env, verbose || cfg.App.Verbose)
			defer logger.Sync()
			monitor.Init()

			log := logger.Log
			log.Info("starting broadcaster worker",
				zap.String("env", cfg.App.Env),
				zap.String("mq", cfg.MQ.Type),
				zap.String("topic", cfg.MQ.Topic),
				zap.String("node", cfg.Node.URL))

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			consumer, err := mq.NewConsumer(ctx, cfg, name, log)
			if err != nil {
				return err
			}

			node := client.NewNodeClient(cfg.Node.URL, cfg.Node.Timeout, log)
			b := worker.NewBroadcaster(node, worker.DialNode(cfg.Node.Timeout, log), cfg.Node.Timeout, log)

			done := make(chan error, 1)
			go func() {
				done <- b.Run(ctx, consumer, cfg.MQ.Topic)
			}()

			// 优雅退出
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			var runErr error
			select {
			case <-quit:
				log.Info("stopping broadcaster worker...")
			case runErr = <-done:
				done = nil
			}

			cancel()
			if done != nil {
				select {
				case runErr = <-done:
				case <-time.After(5 * time.Second):
					log.Warn("consumer did not stop in time")
				}
			}
			if err := consumer.Close(); err != nil {
				log.Warn("close consumer", zap.Error(err))
			}
			log.Info("broadcaster worker stopped")
			return runErr
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "config file (default "+config.DefaultPath+")")
	cmd.Flags().StringVar(&name, "name", "worker-1", "consumer name within the group")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

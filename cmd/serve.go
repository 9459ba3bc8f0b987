package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/kviz/internal/api"
	"github.com/abhisek/kviz/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the bank and a quiz session over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Serve.Addr = addr
		}

		log, err := logger.New(cfg)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		b, err := loadBank(cfg.Bank, false, log)
		if err != nil {
			return err
		}
		log.Info("bank loaded", zap.String("path", cfg.Bank), zap.Int("questions", b.Size()))

		opts := api.Options{
			BankPath:       cfg.Bank,
			DefaultCount:   cfg.Quiz.Count,
			AllowedOrigins: cfg.Serve.AllowedOrigins,
			Logger:         log,
		}
		st, err := openStore(cmd, cfg)
		if err != nil {
			log.Warn("result store unavailable, history disabled", zap.Error(err))
		} else {
			defer st.Close()
			opts.Results = st.ResultRepo()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return api.New(b, opts).ListenAndServe(ctx, cfg.Serve.Addr, cfg.Serve.ShutdownTimeout)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides KVIZ_SERVE_ADDR)")
}

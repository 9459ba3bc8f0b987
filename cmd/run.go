package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/kviz/internal/app"
	"github.com/abhisek/kviz/internal/logger"
	"github.com/abhisek/kviz/internal/screen"
)

// runApp opens the store, loads the bank, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	log, err := logger.NewFile(cfg, logPath(dbPath))
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	b, err := loadBank(cfg.Bank, true, log)
	if err != nil {
		return err
	}

	ws := &screen.Workspace{
		Bank:      b,
		Path:      cfg.Bank,
		QuizCount: cfg.Quiz.Count,
		Player:    playerName(cmd),
		Log:       log,
	}

	// History is optional; the TUI still runs without a database.
	st, err := openStore(cmd, cfg)
	if err != nil {
		log.Warn("result store unavailable", zap.Error(err))
	} else {
		defer st.Close()
		ws.Results = st.ResultRepo()
	}

	return app.Run(ws)
}

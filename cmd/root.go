package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/kviz/internal/bank"
	"github.com/abhisek/kviz/internal/config"
	"github.com/abhisek/kviz/internal/question"
	"github.com/abhisek/kviz/internal/storage"
	"github.com/abhisek/kviz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "kviz",
	Short: "Question bank and quiz runner",
	Long:  "kviz keeps a bank of true/false and multiple-choice questions and runs quizzes over it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("bank", "", "Path to the question bank (.json or .yaml, overrides KVIZ_BANK)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides KVIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/kviz/config.yaml)")
	rootCmd.PersistentFlags().String("name", "", "Player name recorded with results")

	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and applies --bank on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		cfg.Bank = p
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then KVIZ_DB / the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command, cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// loadBank reads the bank at path. A missing file yields a bank seeded
// with the sample questions when seed is set, or an empty one.
func loadBank(path string, seed bool, log *zap.Logger) (*bank.Bank, error) {
	b := bank.New()
	err := storage.LoadBank(path, b)
	switch {
	case err == nil:
		return b, nil
	case storage.IsNotExist(err):
		if seed {
			b.ReplaceAll(question.SampleQuestions())
		}
		log.Debug("bank file not found, starting fresh",
			zap.String("path", path), zap.Bool("seeded", seed))
		return b, nil
	default:
		return nil, fmt.Errorf("load bank: %w", err)
	}
}

// playerName prefers --name, then $USER.
func playerName(cmd *cobra.Command) string {
	if n, _ := cmd.Flags().GetString("name"); n != "" {
		return n
	}
	return os.Getenv("USER")
}

// logPath places the TUI log next to the database.
func logPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "kviz.log")
}

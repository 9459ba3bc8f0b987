package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/kviz/internal/draft"
	"github.com/abhisek/kviz/internal/llm"
	"github.com/abhisek/kviz/internal/logger"
	"github.com/abhisek/kviz/internal/question"
	"github.com/abhisek/kviz/internal/storage"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft new questions with an LLM",
	Long: `Ask the configured LLM provider to draft questions on a topic and add
them to the bank.

Drafts go through the same validation as hand-written questions; invalid
records and repeats of existing prompts are reported and skipped. Use
--dry-run to review the drafts without touching the bank.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("topic", "", "Subject of the questions (required)")
	generateCmd.Flags().Int("count", 5, fmt.Sprintf("Number of questions to draft (max %d)", draft.MaxCount))
	generateCmd.Flags().Bool("dry-run", false, "Print the drafts without saving them")
	_ = generateCmd.MarkFlagRequired("topic")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	count, _ := cmd.Flags().GetInt("count")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := logger.NewQuiet(cfg)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	llmCfg, ok := cfg.LLMConfig()
	if !ok {
		return errors.New("no LLM provider configured: set KVIZ_LLM_PROVIDER and an API key")
	}

	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo(), log)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	b, err := loadBank(cfg.Bank, false, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Drafting %d questions about %q with %s...\n\n", count, topic, llmCfg.Model())

	start := time.Now()
	gen := draft.New(provider, draft.DefaultConfig())
	batch, genErr := gen.Generate(ctx, draft.Input{Topic: topic, Count: count, Existing: b.Texts()})
	if batch != nil {
		for _, r := range batch.Rejected {
			fmt.Fprintf(out, "\033[31m✗ skipped\033[0m %v\n", r)
		}
	}
	if genErr != nil {
		return genErr
	}

	for i, q := range batch.Questions {
		fmt.Fprintf(out, "%2d. %s\n", i+1, question.Render(q))
	}
	fmt.Fprintf(out, "\n%d drafted, %d skipped, %d+%d tokens in %s\n",
		len(batch.Questions), len(batch.Rejected),
		batch.Usage.InputTokens, batch.Usage.OutputTokens, time.Since(start).Round(time.Millisecond))

	if dryRun {
		fmt.Fprintln(out, "Dry run: bank not modified.")
		return nil
	}

	for _, q := range batch.Questions {
		b.Add(q)
	}
	if err := storage.SaveBank(cfg.Bank, b); err != nil {
		return fmt.Errorf("save bank: %w", err)
	}
	fmt.Fprintf(out, "Saved %d questions to %s\n", b.Size(), cfg.Bank)
	return nil
}

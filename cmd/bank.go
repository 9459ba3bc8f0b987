package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/kviz/internal/bank"
	"github.com/abhisek/kviz/internal/codec"
	"github.com/abhisek/kviz/internal/question"
	"github.com/abhisek/kviz/internal/storage"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "List and edit the question bank",
	Long: `List and edit the question bank file.

Questions are addressed by the 1-based position shown by "kviz bank list".
Every editing command writes the bank back to disk.`,
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the questions in the bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		full, _ := cmd.Flags().GetBool("full")
		return withBank(cmd, func(b *bank.Bank) (bool, error) {
			printBank(cmd.OutOrStdout(), b, full)
			return false, nil
		})
	},
}

var bankAddTFCmd = &cobra.Command{
	Use:   "add-tf",
	Short: "Add a true/false question",
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := trueFalseFromFlags(cmd)
		if err != nil {
			return err
		}
		return withBank(cmd, func(b *bank.Bank) (bool, error) {
			b.Add(q)
			fmt.Fprintf(cmd.OutOrStdout(), "Added #%d: %s\n", b.Size(), question.Summary(q))
			return true, nil
		})
	},
}

var bankAddMCQCmd = &cobra.Command{
	Use:   "add-mcq",
	Short: "Add a multiple-choice question",
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := multipleChoiceFromFlags(cmd)
		if err != nil {
			return err
		}
		return withBank(cmd, func(b *bank.Bank) (bool, error) {
			b.Add(q)
			fmt.Fprintf(cmd.OutOrStdout(), "Added #%d: %s\n", b.Size(), question.Summary(q))
			return true, nil
		})
	},
}

var bankRemoveCmd = &cobra.Command{
	Use:   "remove <n>",
	Short: "Remove the question at position n",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBank(cmd, func(b *bank.Bank) (bool, error) {
			i, err := parsePosition(args[0])
			if err != nil {
				return false, err
			}
			q, err := b.At(i)
			if err != nil {
				return false, err
			}
			if err := b.RemoveAt(i); err != nil {
				return false, err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed #%d: %s\n", i+1, question.Summary(q))
			return true, nil
		})
	},
}

var bankEditTFCmd = &cobra.Command{
	Use:   "edit-tf <n>",
	Short: "Replace the question at position n with a true/false question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := trueFalseFromFlags(cmd)
		if err != nil {
			return err
		}
		return replaceAt(cmd, args[0], q)
	},
}

var bankEditMCQCmd = &cobra.Command{
	Use:   "edit-mcq <n>",
	Short: "Replace the question at position n with a multiple-choice question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := multipleChoiceFromFlags(cmd)
		if err != nil {
			return err
		}
		return replaceAt(cmd, args[0], q)
	},
}

var bankImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load questions from another bank file",
	Long: `Load questions from a JSON or YAML bank file.

By default the imported questions replace the bank. With --append they are
added after the existing ones. A file with any invalid record imports nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appendMode, _ := cmd.Flags().GetBool("append")

		doc, err := storage.ReadDocument(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		qs, err := codec.Decode(doc)
		if err != nil {
			return fmt.Errorf("decode %s: %w", args[0], err)
		}

		return withBank(cmd, func(b *bank.Bank) (bool, error) {
			if appendMode {
				for _, q := range qs {
					b.Add(q)
				}
			} else {
				b.ReplaceAll(qs)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d questions; bank now holds %d.\n", len(qs), b.Size())
			return true, nil
		})
	},
}

var bankExportCmd = &cobra.Command{
	Use:   "export <file|->",
	Short: "Write the bank to another file or to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		dest := args[0]

		return withBank(cmd, func(b *bank.Bank) (bool, error) {
			doc := codec.Encode(b.List())
			if dest != "-" {
				if err := storage.WriteDocument(dest, doc); err != nil {
					return false, fmt.Errorf("write %s: %w", dest, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d questions to %s\n", b.Size(), dest)
				return false, nil
			}

			format, err := codec.ParseFormat(formatName)
			if err != nil {
				return false, err
			}
			data, err := codec.Marshal(format, doc)
			if err != nil {
				return false, err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return false, err
		})
	},
}

// withBank loads the bank, runs fn and saves the bank when fn reports a change.
func withBank(cmd *cobra.Command, fn func(b *bank.Bank) (bool, error)) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	b, err := loadBank(cfg.Bank, false, zap.NewNop())
	if err != nil {
		return err
	}
	changed, err := fn(b)
	if err != nil || !changed {
		return err
	}
	if err := storage.SaveBank(cfg.Bank, b); err != nil {
		return fmt.Errorf("save bank: %w", err)
	}
	return nil
}

func replaceAt(cmd *cobra.Command, arg string, q question.Question) error {
	return withBank(cmd, func(b *bank.Bank) (bool, error) {
		i, err := parsePosition(arg)
		if err != nil {
			return false, err
		}
		if err := b.ReplaceAt(i, q); err != nil {
			return false, err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Replaced #%d: %s\n", i+1, question.Summary(q))
		return true, nil
	})
}

func printBank(w io.Writer, b *bank.Bank, full bool) {
	if b.Size() == 0 {
		fmt.Fprintln(w, "The bank is empty.")
		return
	}
	for i, q := range b.List() {
		line := question.Summary(q)
		if full {
			line = question.Render(q)
		}
		fmt.Fprintf(w, "%4d  %s\n", i+1, line)
	}
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintf(w, "%d questions\n", b.Size())
}

func trueFalseFromFlags(cmd *cobra.Command) (question.Question, error) {
	text, _ := cmd.Flags().GetString("text")
	answer, _ := cmd.Flags().GetString("answer")
	correct, err := parseTruth(answer)
	if err != nil {
		return nil, err
	}
	return question.NewTrueFalse(text, correct)
}

func multipleChoiceFromFlags(cmd *cobra.Command) (question.Question, error) {
	text, _ := cmd.Flags().GetString("text")
	options, _ := cmd.Flags().GetStringArray("option")
	correct, _ := cmd.Flags().GetString("correct")
	idx, err := parseOption(correct)
	if err != nil {
		return nil, err
	}
	return question.NewMultipleChoice(text, options, idx)
}

// parsePosition converts a 1-based position to a bank index.
func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q: must be a number from 1", s)
	}
	return n - 1, nil
}

// parseTruth accepts true/false, t/f, yes/no and y/n in any case.
func parseTruth(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y":
		return true, nil
	case "false", "f", "no", "n":
		return false, nil
	default:
		return false, fmt.Errorf("invalid answer %q: must be true or false", s)
	}
}

// parseOption accepts an option letter A-D or a number 1-4.
func parseOption(s string) (int, error) {
	if i, ok := question.ParseOptionLetter(s); ok {
		return i, nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n >= 1 && n <= question.OptionCount {
		return n - 1, nil
	}
	return 0, fmt.Errorf("invalid option %q: must be A-D or 1-4", s)
}

func init() {
	bankListCmd.Flags().Bool("full", false, "Show options and correct answers")

	for _, c := range []*cobra.Command{bankAddTFCmd, bankEditTFCmd} {
		c.Flags().String("text", "", "Question text (required)")
		c.Flags().String("answer", "", "Correct answer: true or false (required)")
		_ = c.MarkFlagRequired("text")
		_ = c.MarkFlagRequired("answer")
	}
	for _, c := range []*cobra.Command{bankAddMCQCmd, bankEditMCQCmd} {
		c.Flags().String("text", "", "Question text (required)")
		c.Flags().StringArrayP("option", "o", nil, "Answer option, repeated four times in order")
		c.Flags().String("correct", "", "Correct option: A-D or 1-4 (required)")
		_ = c.MarkFlagRequired("text")
		_ = c.MarkFlagRequired("correct")
	}

	bankImportCmd.Flags().Bool("append", false, "Add to the bank instead of replacing it")
	bankExportCmd.Flags().String("format", "json", "Syntax for stdout export: json or yaml")

	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankAddTFCmd)
	bankCmd.AddCommand(bankAddMCQCmd)
	bankCmd.AddCommand(bankRemoveCmd)
	bankCmd.AddCommand(bankEditTFCmd)
	bankCmd.AddCommand(bankEditMCQCmd)
	bankCmd.AddCommand(bankImportCmd)
	bankCmd.AddCommand(bankExportCmd)
}

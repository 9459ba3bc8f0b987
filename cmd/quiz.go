package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/kviz/internal/cert"
	"github.com/abhisek/kviz/internal/config"
	"github.com/abhisek/kviz/internal/logger"
	"github.com/abhisek/kviz/internal/question"
	"github.com/abhisek/kviz/internal/session"
	"github.com/abhisek/kviz/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a quiz in line mode",
	Long: `Take a quiz over a random sample of the bank, one command per line.

Answer with t/f for true/false questions and 1-4 or A-D for multiple choice.
Navigate with n (next), p (previous) and g K (go to question K). Type done to
finish and score, r to restart with a new sample, q to quit without scoring.
Closing the input finishes the quiz.`,
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().IntP("count", "n", 0, "Number of questions (default from config)")
	quizCmd.Flags().String("certificate", "", "Write a PDF certificate to this path when finished")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	certPath, _ := cmd.Flags().GetString("certificate")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := logger.NewQuiet(cfg)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if count < 1 {
		count = cfg.Quiz.Count
	}
	count = min(count, config.MaxQuizCount)

	b, err := loadBank(cfg.Bank, false, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	res, err := playQuiz(cmd.InOrStdin(), out, session.New(), b, count)
	if err != nil {
		return err
	}
	if res == nil {
		fmt.Fprintln(out, "Quiz abandoned.")
		return nil
	}
	printResult(out, res)

	name := playerName(cmd)
	if st, err := openStore(cmd, cfg); err != nil {
		log.Warn("result not recorded", zap.Error(err))
	} else {
		defer st.Close()
		if err := recordResult(cmd.Context(), st.ResultRepo(), res, cfg.Bank, name); err != nil {
			log.Warn("result not recorded", zap.Error(err))
		}
	}

	if certPath != "" {
		pdf, err := cert.GeneratePDF(cert.Data{Name: name, Bank: cfg.Bank, Result: res})
		if err != nil {
			return fmt.Errorf("generate certificate: %w", err)
		}
		if err := os.WriteFile(certPath, pdf, 0o644); err != nil {
			return fmt.Errorf("write certificate: %w", err)
		}
		fmt.Fprintf(out, "Certificate written to %s\n", certPath)
	}
	return nil
}

// playQuiz drives sess from line commands read from in. It returns the
// result once the quiz is finished, or nil when the player quits.
func playQuiz(in io.Reader, out io.Writer, sess *session.Session, src session.Source, count int) (*session.Result, error) {
	if err := sess.Start(src, count); err != nil {
		if errors.Is(err, session.ErrEmptyBank) {
			return nil, errors.New("the question bank is empty: add questions with \"kviz bank add-tf\" or \"kviz bank add-mcq\"")
		}
		return nil, err
	}

	scanner := bufio.NewScanner(in)
	fmt.Fprintf(out, "Quiz of %d questions. Type ? for help.\n\n", sess.Len())

	for {
		showQuestion(out, sess)
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return sess.Finish()
		}

		fields := strings.Fields(strings.ToLower(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "n", "next":
			_ = sess.Next()
		case "p", "prev":
			_ = sess.Prev()
		case "g", "goto":
			if len(fields) < 2 {
				fmt.Fprintln(out, "Usage: g K")
				continue
			}
			k, err := strconv.Atoi(fields[1])
			if err != nil || sess.Goto(k-1) != nil {
				fmt.Fprintf(out, "No question %s.\n", fields[1])
			}
		case "done", "finish":
			return sess.Finish()
		case "r", "reset":
			sess.Reset()
			if err := sess.Start(src, count); err != nil {
				return nil, err
			}
			fmt.Fprintln(out, "Restarted with a new sample.")
		case "q", "quit":
			sess.Reset()
			return nil, nil
		case "?", "h", "help":
			fmt.Fprintln(out, "t/f or 1-4/A-D answer, n next, p previous, g K go to, done finish, r restart, q quit")
		default:
			answer(out, sess, fields[0])
		}
		fmt.Fprintln(out)
	}
}

// answer records the answer to the current question and moves on.
func answer(out io.Writer, sess *session.Session, input string) {
	q := sess.Current()
	var value question.Answer
	switch q.(type) {
	case question.TrueFalse:
		v, err := parseTruth(input)
		if err != nil {
			fmt.Fprintln(out, "Answer with t or f.")
			return
		}
		value = question.AnswerFalse
		if v {
			value = question.AnswerTrue
		}
	case question.MultipleChoice:
		i, err := parseOption(input)
		if err != nil {
			fmt.Fprintln(out, "Answer with 1-4 or A-D.")
			return
		}
		value = question.Answer(i)
	}

	if err := sess.RecordAnswer(sess.Cursor(), value); err != nil {
		fmt.Fprintf(out, "Answer not recorded: %v\n", err)
		return
	}
	if sess.Cursor() == sess.Len()-1 && sess.AnsweredCount() == sess.Len() {
		fmt.Fprintln(out, "All questions answered. Type done to finish.")
		return
	}
	_ = sess.Next()
}

func showQuestion(out io.Writer, sess *session.Session) {
	i := sess.Cursor()
	q := sess.Current()
	fmt.Fprintf(out, "── Question %d/%d [%s] ── answered %d/%d\n",
		i+1, sess.Len(), q.Kind(), sess.AnsweredCount(), sess.Len())
	fmt.Fprintln(out, q.Text())
	if mc, ok := q.(question.MultipleChoice); ok {
		for j, o := range mc.Options() {
			fmt.Fprintf(out, "  %c) %s\n", question.OptionLetter(j), o)
		}
	}
	if a, ok := sess.Answer(i); ok {
		fmt.Fprintf(out, "Your answer: %s\n", question.AnswerLabel(q, a))
	}
}

func printResult(out io.Writer, res *session.Result) {
	fmt.Fprintf(out, "── Result: %d/%d correct (%.1f%%), %d unanswered ──\n",
		res.Correct, res.Total, res.Percentage, res.Unanswered)
	for i, item := range res.Items {
		mark, given := "–", "unanswered"
		if item.Answered {
			given = question.AnswerLabel(item.Question, item.Answer)
			mark = "\033[31m✗\033[0m"
			if item.Correct {
				mark = "\033[32m✓\033[0m"
			}
		}
		correct := question.CorrectLabel(item.Question)
		fmt.Fprintf(out, "%s %2d. %s\n      yours: %s  correct: %s\n",
			mark, i+1, question.Summary(item.Question), given, correct)
	}
}

func recordResult(ctx context.Context, repo store.ResultRepo, res *session.Result, bankPath, player string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return repo.Append(ctx, store.QuizResultData{
		SessionID:  res.SessionID,
		BankPath:   bankPath,
		PlayerName: player,
		Total:      res.Total,
		Correct:    res.Correct,
		Unanswered: res.Unanswered,
		Percentage: res.Percentage,
		FinishedAt: res.FinishedAt,
	})
}

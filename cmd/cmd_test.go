package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kviz/internal/bank"
	"github.com/abhisek/kviz/internal/question"
	"github.com/abhisek/kviz/internal/session"
	"github.com/abhisek/kviz/internal/storage"
)

func TestParsePosition(t *testing.T) {
	i, err := parsePosition(" 3 ")
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	for _, s := range []string{"0", "-1", "x", ""} {
		_, err := parsePosition(s)
		assert.Error(t, err, s)
	}
}

func TestParseTruth(t *testing.T) {
	for _, s := range []string{"true", "T", "yes", "y"} {
		v, err := parseTruth(s)
		require.NoError(t, err, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"false", "f", "NO", "n"} {
		v, err := parseTruth(s)
		require.NoError(t, err, s)
		assert.False(t, v, s)
	}
	_, err := parseTruth("maybe")
	assert.Error(t, err)
}

func TestParseOption(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"a", 0}, {"B", 1}, {"3", 2}, {"4", 3},
	}
	for _, tt := range tests {
		got, err := parseOption(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	for _, s := range []string{"e", "0", "5", ""} {
		_, err := parseOption(s)
		assert.Error(t, err, s)
	}
}

func trueBank(t *testing.T, n int) *bank.Bank {
	t.Helper()
	b := bank.New()
	for i := range n {
		q, err := question.NewTrueFalse("statement "+string(rune('A'+i)), true)
		require.NoError(t, err)
		b.Add(q)
	}
	return b
}

func TestPlayQuiz_AllCorrect(t *testing.T) {
	var out bytes.Buffer
	res, err := playQuiz(strings.NewReader("t\nt\ndone\n"), &out, session.New(), trueBank(t, 2), 2)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Correct)
	assert.Equal(t, 0, res.Unanswered)
	assert.InDelta(t, 100.0, res.Percentage, 0.001)
	assert.Contains(t, out.String(), "All questions answered.")
}

func TestPlayQuiz_EOFFinishes(t *testing.T) {
	var out bytes.Buffer
	res, err := playQuiz(strings.NewReader(""), &out, session.New(), trueBank(t, 3), 3)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 3, res.Unanswered)
	assert.Equal(t, 0, res.Correct)
}

func TestPlayQuiz_Quit(t *testing.T) {
	var out bytes.Buffer
	res, err := playQuiz(strings.NewReader("t\nq\n"), &out, session.New(), trueBank(t, 2), 2)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestPlayQuiz_GotoAndInvalidInput(t *testing.T) {
	var out bytes.Buffer
	input := "g 3\nmaybe\nf\ng 9\ndone\n"
	res, err := playQuiz(strings.NewReader(input), &out, session.New(), trueBank(t, 3), 3)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, 2, res.Unanswered)
	assert.Equal(t, 0, res.Correct)
	assert.True(t, res.Items[2].Answered)
	assert.Contains(t, out.String(), "Answer with t or f.")
	assert.Contains(t, out.String(), "No question 9.")
}

func TestPlayQuiz_EmptyBank(t *testing.T) {
	var out bytes.Buffer
	_, err := playQuiz(strings.NewReader(""), &out, session.New(), bank.New(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestPrintResult(t *testing.T) {
	s := session.New()
	b := trueBank(t, 1)
	require.NoError(t, s.Start(b, 1))
	require.NoError(t, s.RecordAnswer(0, question.AnswerFalse))
	res, err := s.Finish()
	require.NoError(t, err)

	var out bytes.Buffer
	printResult(&out, res)
	assert.Contains(t, out.String(), "0/1 correct (0.0%)")
	assert.Contains(t, out.String(), "yours: False  correct: True")
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestBankCommands(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "bank.yaml")

	out := execute(t, "bank", "add-tf", "--bank", path, "--text", "The sky is blue.", "--answer", "true")
	assert.Contains(t, out, "Added #1: [TF] The sky is blue.")

	out = execute(t, "bank", "add-mcq", "--bank", path, "--text", "Largest planet?",
		"-o", "Mars", "-o", "Jupiter", "-o", "Venus", "-o", "Earth", "--correct", "B")
	assert.Contains(t, out, "Added #2: [MCQ] Largest planet?")

	out = execute(t, "bank", "edit-tf", "1", "--bank", path, "--text", "The sky is green.", "--answer", "f")
	assert.Contains(t, out, "Replaced #1")

	b := bank.New()
	require.NoError(t, storage.LoadBank(path, b))
	require.Equal(t, 2, b.Size())
	q, _ := b.At(0)
	assert.Equal(t, "[TF] The sky is green. (Correct: False)", question.Render(q))
	q, _ = b.At(1)
	assert.Equal(t, "[MCQ] Largest planet? (A) Mars (B) Jupiter (C) Venus (D) Earth (Correct: B)", question.Render(q))

	out = execute(t, "bank", "remove", "1", "--bank", path)
	assert.Contains(t, out, "Removed #1")

	out = execute(t, "bank", "list", "--bank", path)
	assert.Contains(t, out, "1  [MCQ] Largest planet?")
	assert.Contains(t, out, "1 questions")
}

func TestBankImportExport(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
	dir := t.TempDir()

	src := filepath.Join(dir, "src.json")
	require.NoError(t, storage.SaveBank(src, bank.New(question.SampleQuestions()...)))

	dst := filepath.Join(dir, "bank.json")
	out := execute(t, "bank", "import", src, "--bank", dst)
	assert.Contains(t, out, "Imported 4 questions; bank now holds 4.")

	exported := filepath.Join(dir, "copy.yaml")
	out = execute(t, "bank", "export", exported, "--bank", dst)
	assert.Contains(t, out, "Exported 4 questions")

	b := bank.New()
	require.NoError(t, storage.LoadBank(exported, b))
	assert.Equal(t, 4, b.Size())
}

func TestVersion(t *testing.T) {
	out := execute(t, "version")
	assert.Equal(t, "kviz (devel)\n", out)
}

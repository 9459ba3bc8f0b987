package bank_test

import (
	"errors"
	"testing"

	"github.com/abhisek/kviz/internal/bank"
	"github.com/abhisek/kviz/internal/question"
)

func mustTF(t *testing.T, text string, correct bool) question.Question {
	t.Helper()
	q, err := question.NewTrueFalse(text, correct)
	if err != nil {
		t.Fatalf("new true/false: %v", err)
	}
	return q
}

func TestNewBankIsEmpty(t *testing.T) {
	b := bank.New()
	if b.Size() != 0 {
		t.Errorf("expected empty bank, got %d questions", b.Size())
	}
	if len(b.List()) != 0 {
		t.Errorf("expected empty list")
	}
}

func TestAddPreservesOrder(t *testing.T) {
	b := bank.New()
	for _, text := range []string{"Q1", "Q2", "Q3"} {
		b.Add(mustTF(t, text, true))
	}

	got := b.Texts()
	want := []string{"Q1", "Q2", "Q3"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("texts[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRemoveAt(t *testing.T) {
	b := bank.New(mustTF(t, "A", true), mustTF(t, "B", true), mustTF(t, "C", true))

	if err := b.RemoveAt(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if b.Size() != 2 {
		t.Fatalf("size = %d, want 2", b.Size())
	}
	if got := b.Texts(); got[0] != "A" || got[1] != "C" {
		t.Errorf("texts = %v, want [A C]", got)
	}
}

func TestRemoveAt_OutOfRange(t *testing.T) {
	b := bank.New(mustTF(t, "A", true))

	for _, i := range []int{-1, 1, 5} {
		err := b.RemoveAt(i)
		var ierr *bank.IndexError
		if !errors.As(err, &ierr) {
			t.Fatalf("RemoveAt(%d): expected IndexError, got %v", i, err)
		}
		if ierr.Index != i || ierr.Len != 1 {
			t.Errorf("IndexError = %+v", ierr)
		}
	}
	if b.Size() != 1 {
		t.Error("failed removal must not change the bank")
	}
}

func TestReplaceAt(t *testing.T) {
	b := bank.New(mustTF(t, "A", true), mustTF(t, "B", true))

	if err := b.ReplaceAt(0, mustTF(t, "Z", false)); err != nil {
		t.Fatalf("replace: %v", err)
	}
	q, err := b.At(0)
	if err != nil {
		t.Fatalf("at: %v", err)
	}
	if q.Text() != "Z" {
		t.Errorf("text = %q, want Z", q.Text())
	}

	if err := b.ReplaceAt(2, mustTF(t, "X", true)); err == nil {
		t.Error("expected error for out-of-range replace")
	}
}

func TestListIsACopy(t *testing.T) {
	b := bank.New(mustTF(t, "A", true))
	list := b.List()
	list[0] = mustTF(t, "mutated", true)

	q, _ := b.At(0)
	if q.Text() != "A" {
		t.Error("mutating List() result must not affect the bank")
	}
}

func TestReplaceAll(t *testing.T) {
	b := bank.New(mustTF(t, "old", true))
	b.ReplaceAll([]question.Question{mustTF(t, "n1", true), nil, mustTF(t, "n2", false)})

	if b.Size() != 2 {
		t.Fatalf("size = %d, want 2", b.Size())
	}
	if got := b.Texts(); got[0] != "n1" || got[1] != "n2" {
		t.Errorf("texts = %v", got)
	}
}

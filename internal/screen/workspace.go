package screen

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/abhisek/kviz/internal/bank"
	"github.com/abhisek/kviz/internal/storage"
	"github.com/abhisek/kviz/internal/store"
	"github.com/abhisek/kviz/internal/ui/layout"
)

// Workspace is the state shared by all screens: the bank being edited,
// where it lives on disk and where finished quizzes are recorded.
// It is only touched from the Bubble Tea update loop.
type Workspace struct {
	Bank      *bank.Bank
	Path      string
	Results   store.ResultRepo // nil disables history
	QuizCount int
	Player    string
	Log       *zap.Logger

	dirty bool
}

// Dirty reports whether the bank has unsaved edits.
func (w *Workspace) Dirty() bool { return w.dirty }

// MarkDirty records an in-memory edit.
func (w *Workspace) MarkDirty() { w.dirty = true }

// Save writes the bank to Path.
func (w *Workspace) Save() error {
	if err := storage.SaveBank(w.Path, w.Bank); err != nil {
		w.Logger().Warn("save bank failed", zap.String("path", w.Path), zap.Error(err))
		return err
	}
	w.dirty = false
	w.Logger().Info("bank saved", zap.String("path", w.Path), zap.Int("questions", w.Bank.Size()))
	return nil
}

// Reload discards in-memory edits and reads the bank from Path again.
// On failure the bank is left as it was.
func (w *Workspace) Reload() error {
	if err := storage.LoadBank(w.Path, w.Bank); err != nil {
		w.Logger().Warn("reload bank failed", zap.String("path", w.Path), zap.Error(err))
		return err
	}
	w.dirty = false
	return nil
}

// Stats returns the header summary of the bank.
func (w *Workspace) Stats() layout.HeaderStats {
	return layout.HeaderStats{
		BankName: filepath.Base(w.Path),
		BankSize: w.Bank.Size(),
		Unsaved:  w.dirty,
	}
}

// Logger returns the workspace logger, or a no-op logger when unset.
func (w *Workspace) Logger() *zap.Logger {
	if w.Log == nil {
		return zap.NewNop()
	}
	return w.Log
}

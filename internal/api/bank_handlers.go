package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/kviz/internal/codec"
	"github.com/abhisek/kviz/internal/storage"
)

// questionView is a bank entry: its position plus the record fields.
type questionView struct {
	Index int `json:"index"`
	codec.Record
}

// UnmarshalJSON keeps the index; the embedded record's decoder would
// otherwise be promoted and drop it.
func (v *questionView) UnmarshalJSON(data []byte) error {
	var head struct {
		Index int `json:"index"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	if err := v.Record.UnmarshalJSON(data); err != nil {
		return err
	}
	v.Index = head.Index
	return nil
}

type bankView struct {
	Size      int            `json:"size"`
	Questions []questionView `json:"questions"`
}

func (s *Server) bankView() bankView {
	qs := s.bank.List()
	out := bankView{Size: len(qs), Questions: make([]questionView, len(qs))}
	for i, q := range qs {
		out.Questions[i] = questionView{Index: i, Record: codec.EncodeQuestion(q)}
	}
	return out
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.bankView())
}

func (s *Server) handleAddQuestion(w http.ResponseWriter, r *http.Request) {
	var rec codec.Record
	if err := decodeBody(w, r, &rec); err != nil {
		s.writeError(w, err)
		return
	}
	q, err := codec.DecodeRecord(rec)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bank.Add(q)
	writeJSON(w, http.StatusCreated, questionView{Index: s.bank.Size() - 1, Record: codec.EncodeQuestion(q)})
}

func (s *Server) handleReplaceQuestion(w http.ResponseWriter, r *http.Request) {
	i, err := indexParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var rec codec.Record
	if err := decodeBody(w, r, &rec); err != nil {
		s.writeError(w, err)
		return
	}
	q, err := codec.DecodeRecord(rec)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.bank.ReplaceAt(i, q); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questionView{Index: i, Record: codec.EncodeQuestion(q)})
}

func (s *Server) handleRemoveQuestion(w http.ResponseWriter, r *http.Request) {
	i, err := indexParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.bank.RemoveAt(i); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSaveBank(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := storage.SaveBank(s.opts.BankPath, s.bank); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"path": s.opts.BankPath, "size": s.bank.Size()})
}

func (s *Server) handleLoadBank(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := storage.LoadBank(s.opts.BankPath, s.bank); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.bankView())
}

func indexParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &badRequest{msg: "invalid index " + strconv.Quote(raw)}
	}
	return i, nil
}

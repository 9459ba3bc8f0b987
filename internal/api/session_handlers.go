package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/kviz/internal/cert"
	"github.com/abhisek/kviz/internal/question"
	"github.com/abhisek/kviz/internal/session"
	"github.com/abhisek/kviz/internal/store"
)

// promptView shows a question without revealing its answer.
type promptView struct {
	Index   int      `json:"index"`
	Tip     string   `json:"tip"`
	Text    string   `json:"text"`
	Options []string `json:"opcije,omitempty"`
}

type itemView struct {
	Text          string  `json:"text"`
	Answer        *string `json:"answer"`
	CorrectAnswer string  `json:"correct_answer"`
	Correct       bool    `json:"correct"`
}

type resultView struct {
	*session.Result
	Items []itemView `json:"items"`
}

type sessionView struct {
	ID        string             `json:"id,omitempty"`
	State     string             `json:"state"`
	Total     int                `json:"total"`
	Cursor    int                `json:"cursor"`
	Answered  int                `json:"answered"`
	Questions []promptView       `json:"questions"`
	Answers   []*question.Answer `json:"answers"`
	Result    *resultView        `json:"result,omitempty"`
}

func prompt(i int, q question.Question) promptView {
	v := promptView{Index: i, Tip: string(q.Kind()), Text: q.Text()}
	if mc, ok := q.(question.MultipleChoice); ok {
		v.Options = mc.Options()
	}
	return v
}

func newResultView(res *session.Result) *resultView {
	if res == nil {
		return nil
	}
	v := &resultView{Result: res, Items: make([]itemView, len(res.Items))}
	for i, it := range res.Items {
		iv := itemView{
			Text:          it.Question.Text(),
			Correct:       it.Correct,
			CorrectAnswer: question.CorrectLabel(it.Question),
		}
		if it.Answered {
			label := question.AnswerLabel(it.Question, it.Answer)
			iv.Answer = &label
		}
		v.Items[i] = iv
	}
	return v
}

func (s *Server) sessionView() sessionView {
	qs := s.sess.Questions()
	v := sessionView{
		ID:        s.sess.ID(),
		State:     s.sess.State().String(),
		Total:     s.sess.Len(),
		Cursor:    s.sess.Cursor(),
		Answered:  s.sess.AnsweredCount(),
		Questions: make([]promptView, len(qs)),
		Answers:   s.sess.Answers(),
		Result:    newResultView(s.sess.Result()),
	}
	for i, q := range qs {
		v.Questions[i] = prompt(i, q)
	}
	return v
}

type startRequest struct {
	Count int `json:"count"`
}

type answerRequest struct {
	Index *int `json:"index"`
	Value *int `json:"value"`
}

type gotoRequest struct {
	Index *int `json:"index"`
}

type finishRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Count == 0 {
		req.Count = s.opts.DefaultCount
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.Start(s.bank, req.Count); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.sessionView())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.sessionView())
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess.Reset()
	writeJSON(w, http.StatusOK, s.sessionView())
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Index == nil || req.Value == nil {
		s.writeError(w, &badRequest{msg: "index and value are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.RecordAnswer(*req.Index, question.Answer(*req.Value)); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sessionView())
}

func (s *Server) handleGoto(w http.ResponseWriter, r *http.Request) {
	var req gotoRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Index == nil {
		s.writeError(w, &badRequest{msg: "index is required"})
		return
	}
	s.navigate(w, func() error { return s.sess.Goto(*req.Index) })
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, func() error { return s.sess.Next() })
}

func (s *Server) handlePrev(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, func() error { return s.sess.Prev() })
}

func (s *Server) navigate(w http.ResponseWriter, move func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := move(); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sessionView())
}

func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	var req finishRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.sess.Finish()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.recordResult(r.Context(), res, req.Name)
	writeJSON(w, http.StatusOK, newResultView(res))
}

// recordResult appends res to the history. A store failure is logged; the
// quiz itself already finished.
func (s *Server) recordResult(ctx context.Context, res *session.Result, name string) {
	if s.opts.Results == nil {
		return
	}
	err := s.opts.Results.Append(ctx, store.QuizResultData{
		SessionID:  res.SessionID,
		BankPath:   s.opts.BankPath,
		PlayerName: strings.TrimSpace(name),
		Total:      res.Total,
		Correct:    res.Correct,
		Unanswered: res.Unanswered,
		Percentage: res.Percentage,
		FinishedAt: res.FinishedAt,
	})
	if err != nil {
		s.log.Warn("failed to record quiz result", zap.String("session_id", res.SessionID), zap.Error(err))
	}
}

func (s *Server) handleCertificate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	res := s.sess.Result()
	s.mu.Unlock()

	pdf, err := cert.GeneratePDF(cert.Data{
		Name:   r.URL.Query().Get("name"),
		Bank:   s.opts.BankPath,
		Result: res,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="kviz-certificate-`+res.FinishedAt.Format(time.DateOnly)+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

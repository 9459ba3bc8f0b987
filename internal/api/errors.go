package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/abhisek/kviz/internal/bank"
	"github.com/abhisek/kviz/internal/cert"
	"github.com/abhisek/kviz/internal/codec"
	"github.com/abhisek/kviz/internal/question"
	"github.com/abhisek/kviz/internal/session"
	"github.com/abhisek/kviz/internal/storage"
)

// Error kinds reported in the "error" field of a failure body.
const (
	KindBadRequest = "bad_request"
	KindValidation = "validation"
	KindFormat     = "format"
	KindIndex      = "index"
	KindState      = "state"
	KindEmptyBank  = "empty_bank"
	KindStorage    = "storage"
	KindInternal   = "internal"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// badRequest marks malformed request bodies and parameters.
type badRequest struct{ msg string }

func (e *badRequest) Error() string { return e.msg }

// classify maps a domain error to its HTTP status and kind. A validation
// failure wrapped in a FormatError still reports as validation.
func classify(err error) (int, string) {
	var (
		bad   *badRequest
		verr  *question.ValidationError
		ferr  *codec.FormatError
		ierr  *bank.IndexError
		serr  *session.StateError
		sterr *storage.StorageError
	)
	switch {
	case errors.As(err, &bad):
		return http.StatusBadRequest, KindBadRequest
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, KindValidation
	case errors.As(err, &ferr):
		return http.StatusBadRequest, KindFormat
	case errors.As(err, &ierr):
		return http.StatusNotFound, KindIndex
	case errors.As(err, &serr), errors.Is(err, cert.ErrNoResult):
		return http.StatusConflict, KindState
	case errors.Is(err, session.ErrEmptyBank):
		return http.StatusConflict, KindEmptyBank
	case errors.As(err, &sterr):
		return http.StatusInternalServerError, KindStorage
	default:
		return http.StatusInternalServerError, KindInternal
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, kind := classify(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("kind", kind), zap.Error(err))
	}
	writeJSON(w, status, errorBody{Error: kind, Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &badRequest{msg: "invalid JSON body: " + err.Error()}
	}
	return nil
}

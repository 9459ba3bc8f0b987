// Package api exposes the question bank and a single quiz session over a
// small JSON HTTP API. All handlers share one mutex, so the bank and the
// session see one caller at a time.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/abhisek/kviz/internal/bank"
	"github.com/abhisek/kviz/internal/session"
	"github.com/abhisek/kviz/internal/store"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Options configures a Server.
type Options struct {
	// BankPath is where bank save/load read and write.
	BankPath string

	// DefaultCount is used when a session start omits count.
	DefaultCount int

	// AllowedOrigins feeds the CORS middleware. Empty disables CORS.
	AllowedOrigins []string

	// Results records finished sessions. May be nil.
	Results store.ResultRepo

	Logger *zap.Logger

	// SessionOptions are passed to every new session.
	SessionOptions []session.Option
}

// Server holds the shared bank and session.
type Server struct {
	mu   sync.Mutex
	bank *bank.Bank
	sess *session.Session

	opts   Options
	log    *zap.Logger
	router chi.Router
}

// New creates a Server over b.
func New(b *bank.Bank, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.DefaultCount < 1 {
		opts.DefaultCount = 5
	}
	s := &Server{
		bank: b,
		sess: session.New(opts.SessionOptions...),
		opts: opts,
		log:  opts.Logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	if len(s.opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
	r.Use(securityHeaders)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) })

	r.Route("/api", func(r chi.Router) {
		r.Get("/questions", s.handleListQuestions)
		r.Post("/questions", s.handleAddQuestion)
		r.Put("/questions/{index}", s.handleReplaceQuestion)
		r.Delete("/questions/{index}", s.handleRemoveQuestion)

		r.Post("/bank/save", s.handleSaveBank)
		r.Post("/bank/load", s.handleLoadBank)

		r.Route("/session", func(r chi.Router) {
			r.Post("/", s.handleStartSession)
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleResetSession)
			r.Post("/answer", s.handleAnswer)
			r.Post("/goto", s.handleGoto)
			r.Post("/next", s.handleNext)
			r.Post("/prev", s.handlePrev)
			r.Post("/finish", s.handleFinish)
			r.Get("/certificate", s.handleCertificate)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("api listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down api")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

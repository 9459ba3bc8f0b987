package store

import (
	"context"
	"time"
)

// QuizResultData captures a finished quiz.
type QuizResultData struct {
	SessionID  string
	BankPath   string
	PlayerName string
	Total      int
	Correct    int
	Unanswered int
	Percentage float64
	FinishedAt time.Time
}

// QuizResult is a stored QuizResultData with its ordering metadata.
type QuizResult struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	QuizResultData
}

// ResultRepo stores quiz results.
type ResultRepo interface {
	// Append records a finished quiz.
	Append(ctx context.Context, data QuizResultData) error

	// Recent returns up to limit results, newest first. limit <= 0 means all.
	Recent(ctx context.Context, limit int) ([]QuizResult, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentLLMRequests returns up to limit events, newest first.
	RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error)
}

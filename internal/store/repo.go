package store

import (
	"context"
	"time"
)

// LLMRequestEvent captures one LLM API call.
type LLMRequestEvent struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestRecord is a stored LLM request event.
type LLMRequestRecord struct {
	ID        int
	CreatedAt time.Time
	LLMRequestEvent
}

// LLMUsageStats aggregates token usage per purpose label.
type LLMUsageStats struct {
	Purpose      string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs float64
}

// SessionEvent captures one finished quiz session.
type SessionEvent struct {
	TotalQuestions  int
	Correct         int
	Wrong           int
	Accuracy        float64
	DurationSeconds float64
	IsReview        bool
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, event LLMRequestEvent) error

	// AppendSession records a finished quiz session.
	AppendSession(ctx context.Context, event SessionEvent) error

	// LLMUsageByPurpose aggregates LLM usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// RecentLLMRequests returns the most recent LLM events, newest first.
	RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestRecord, error)
}

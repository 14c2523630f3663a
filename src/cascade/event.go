package cascade

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const EventTransactionsImported = "transactions.imported"

var (
	ErrQueueFull   = errors.New("cascade queue is full")
	ErrQueueClosed = errors.New("cascade queue is closed")
)

// TransactionsImported tells the downstream matcher that a run stored new bank
// transactions. The matcher needs no payload; the fields are informational.
type TransactionsImported struct {
	EventID    string    `json:"eventId"`
	Type       string    `json:"type"`
	RunID      string    `json:"runId"`
	Count      int       `json:"count"`
	AccountIDs []string  `json:"accountIds,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewTransactionsImported(eventID, runID string, count int, accountIDs []string, at time.Time) TransactionsImported {
	return TransactionsImported{
		EventID:    eventID,
		Type:       EventTransactionsImported,
		RunID:      runID,
		Count:      count,
		AccountIDs: accountIDs,
		OccurredAt: at.UTC(),
	}
}

// Emitter delivers an auto-match trigger somewhere.
type Emitter interface {
	Emit(ctx context.Context, event TransactionsImported) error
}

// Sink is an Emitter that owns a connection.
type Sink interface {
	Emitter
	Close() error
}

// CascadeError reports a failed auto-match trigger. It is logged, never returned
// to the caller of a sync run.
type CascadeError struct {
	Sink       string
	EventID    string
	StatusCode int
	Err        error
}

func (e *CascadeError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("cascade via %s (event %s) failed with status %d", e.Sink, e.EventID, e.StatusCode)
	}
	return fmt.Sprintf("cascade via %s (event %s): %v", e.Sink, e.EventID, e.Err)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}

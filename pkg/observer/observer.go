// Package observer provides the Observer pattern implementation for parser
// execution monitoring. This allows library consumers to track and monitor
// parse behavior action by action.
package observer

import (
	"context"
	"time"

	"github.com/yesoreyeram/transect/pkg/action"
)

// EventType represents the type of parse event
type EventType string

const (
	// Passage-level events
	EventParseStart EventType = "parse_start"
	EventParseEnd   EventType = "parse_end"

	// Action-level events
	EventActionApplied  EventType = "action_applied"
	EventActionRejected EventType = "action_rejected"

	// Non-fatal diagnostics raised during CreatePassage (e.g. a linkage
	// group with fewer than two arguments)
	EventWarning EventType = "warning"
)

// ExecutionStatus represents the status of an action or parse
type ExecutionStatus string

const (
	StatusStarted   ExecutionStatus = "started"
	StatusSuccess   ExecutionStatus = "success"
	StatusFailure   ExecutionStatus = "failure"
	StatusCompleted ExecutionStatus = "completed"
)

// Event represents a parse event with all relevant metadata
type Event struct {
	// Event identification
	Type      EventType       `json:"type"`
	Status    ExecutionStatus `json:"status"`
	Timestamp time.Time       `json:"timestamp"`

	// Parse context
	PassageID string `json:"passage_id,omitempty"`

	// Action-specific data (empty for passage-level events)
	ActionIndex int        `json:"action_index,omitempty"`
	ActionKind  action.Kind `json:"action_kind,omitempty"`

	// Timing information
	StartTime   time.Time     `json:"start_time,omitempty"`
	ElapsedTime time.Duration `json:"elapsed_time,omitempty"`

	// Execution results
	Result interface{} `json:"result,omitempty"`
	Error  error       `json:"error,omitempty"`

	// Additional metadata
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Observer defines the interface for parse observers. Observers receive
// notifications about various stages of a parse.
type Observer interface {
	// OnEvent is called when a parse event occurs.
	// The context can be used for cancellation and passing request-scoped values.
	OnEvent(ctx context.Context, event Event)
}

// Logger defines the interface for custom logging.
// This allows library consumers to integrate with their own logging systems.
type Logger interface {
	// Debug logs debug-level messages
	Debug(msg string, fields map[string]interface{})

	// Info logs info-level messages
	Info(msg string, fields map[string]interface{})

	// Warn logs warning-level messages
	Warn(msg string, fields map[string]interface{})

	// Error logs error-level messages
	Error(msg string, fields map[string]interface{})
}

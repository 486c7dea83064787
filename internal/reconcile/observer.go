package reconcile

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
)

// Logger is the minimal logging interface used during reconciliation.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer defines the interface for structured observability during
// reconciliation.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured reconciliation event.
type Event struct {
	Type      EventType         // Type of event
	Message   string            // Human-readable message
	Resource  string            // Resource ID if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of reconciliation event.
type EventType string

const (
	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a resource already exists.
	EventResourceExists EventType = "resource.exists"
	// EventResourceDeleting indicates a resource is being deleted.
	EventResourceDeleting EventType = "resource.deleting"
	// EventResourceWaiting indicates a resource is being polled for a state transition.
	EventResourceWaiting EventType = "resource.waiting"
	// EventResourceReady indicates a resource reached its target state.
	EventResourceReady EventType = "resource.ready"
	// EventSkipped indicates a reconciliation step was deliberately skipped.
	EventSkipped EventType = "reconcile.skipped"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct {
	contextFields map[string]string
}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		contextFields: make(map[string]string),
	}
}

// Printf implements the Logger interface.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements the Observer interface.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	log.Print(o.formatEvent(o.mergeFields(event)))
}

// mergeFields folds the observer's context fields into the event,
// keeping event-local fields on conflict.
func (o *ConsoleObserver) mergeFields(event Event) Event {
	if event.Fields == nil {
		event.Fields = make(map[string]string)
	}
	for k, v := range o.contextFields {
		if _, exists := event.Fields[k]; !exists {
			event.Fields[k] = v
		}
	}
	return event
}

// WithFields implements the Observer interface.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string)
	for k, v := range o.contextFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &ConsoleObserver{contextFields: newFields}
}

// formatEvent renders an event as a single log line.
func (o *ConsoleObserver) formatEvent(event Event) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s]", event.Type)
	if event.Resource != "" {
		fmt.Fprintf(&b, " %s", event.Resource)
	}
	if event.Message != "" {
		fmt.Fprintf(&b, ": %s", event.Message)
	}

	if len(event.Fields) > 0 {
		keys := make([]string, 0, len(event.Fields))
		for k := range event.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%s", k, event.Fields[k])
		}
	}

	return b.String()
}

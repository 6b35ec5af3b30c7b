package provisioning

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Observer receives everything a run reports: free-form lines through
// Logger and typed events for phases, resources, and webhook deliveries.
type Observer interface {
	Logger
	Event(event Event)
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "registry", "image")
	Message   string            // Human-readable message
	Resource  string            // Resource name/ID if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a provisioning phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a provisioning phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a provisioning phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceFailed indicates resource creation failed.
	EventResourceFailed EventType = "resource.failed"
	// EventResourceDeleting indicates a resource is being deleted.
	EventResourceDeleting EventType = "resource.deleting"
	// EventResourceDeleted indicates a resource was deleted successfully.
	EventResourceDeleted EventType = "resource.deleted"

	// EventWebhookEvent carries one recorded webhook delivery.
	EventWebhookEvent EventType = "webhook.event"

	// EventValidationWarning indicates a validation warning.
	EventValidationWarning EventType = "validation.warning"
)

// LogrusObserver implements Observer on top of a logrus logger.
type LogrusObserver struct {
	log logrus.FieldLogger
}

// NewLogrusObserver creates an observer writing to log.
func NewLogrusObserver(log logrus.FieldLogger) *LogrusObserver {
	return &LogrusObserver{log: log}
}

// Printf implements Logger.
func (o *LogrusObserver) Printf(format string, v ...interface{}) {
	o.log.Infof(format, v...)
}

// Event implements Observer.
func (o *LogrusObserver) Event(event Event) {
	entry := o.log.WithField("event", string(event.Type))
	if event.Phase != "" {
		entry = entry.WithField("phase", event.Phase)
	}
	if event.Resource != "" {
		entry = entry.WithField("resource", event.Resource)
	}
	for k, v := range event.Fields {
		entry = entry.WithField(k, v)
	}
	if !event.Timestamp.IsZero() {
		entry = entry.WithTime(event.Timestamp)
	}

	switch event.Type {
	case EventPhaseFailed, EventResourceFailed:
		entry.Error(event.Message)
	case EventValidationWarning:
		entry.Warn(event.Message)
	default:
		entry.Info(event.Message)
	}
}

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{Type: EventPhaseStarted, Phase: phase, Message: "starting"})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{Type: EventPhaseFailed, Phase: phase, Message: fmt.Sprintf("failed: %v", err)})
}

// Resource identifies an Azure resource in lifecycle events. ID is empty
// until the resource exists.
type Resource struct {
	Kind string
	Name string
	ID   string
}

var resourceVerbs = map[EventType]string{
	EventResourceCreating: "creating %s",
	EventResourceCreated:  "%s created",
	EventResourceFailed:   "%s failed",
	EventResourceDeleting: "deleting %s",
	EventResourceDeleted:  "%s deleted",
}

// LogResource emits a lifecycle event of type t for res.
func LogResource(observer Observer, phase string, t EventType, res Resource) {
	format, ok := resourceVerbs[t]
	if !ok {
		format = "%s"
	}
	fields := map[string]string{"type": res.Kind}
	if res.ID != "" {
		fields["id"] = res.ID
	}
	observer.Event(Event{
		Type:     t,
		Phase:    phase,
		Resource: res.Name,
		Message:  fmt.Sprintf(format, res.Kind),
		Fields:   fields,
	})
}

// LogWarning logs a non-fatal condition worth attention.
func LogWarning(observer Observer, phase, message string) {
	observer.Event(Event{Type: EventValidationWarning, Phase: phase, Message: message})
}

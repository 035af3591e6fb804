package event

import "time"

// Event is anything published on the Bus. Event types follow the
// "category.action" convention.
type Event interface {
	EventType() string
	Timestamp() time.Time
}

type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{eventType: eventType, timestamp: time.Now()}
}

// Kernel event types.
const (
	TypeActionDispatched    = "action.dispatched"
	TypeStateCommitted      = "state.committed"
	TypeRenderCompleted     = "render.completed"
	TypeSubscriptionStarted = "subscription.started"
	TypeSubscriptionStopped = "subscription.stopped"
)

// ActionDispatchedEvent is published for every action the dispatcher
// resolves, including the ones a transition returns.
type ActionDispatchedEvent struct {
	baseEvent
	App    string
	Action string // action name, see action.Name
}

func NewActionDispatchedEvent(app, action string) ActionDispatchedEvent {
	return ActionDispatchedEvent{
		baseEvent: newBaseEvent(TypeActionDispatched),
		App:       app,
		Action:    action,
	}
}

// StateCommittedEvent is published when a new state is committed.
// Scheduled is false when a frame was already pending.
type StateCommittedEvent struct {
	baseEvent
	App       string
	Scheduled bool
}

func NewStateCommittedEvent(app string, scheduled bool) StateCommittedEvent {
	return StateCommittedEvent{
		baseEvent: newBaseEvent(TypeStateCommitted),
		App:       app,
		Scheduled: scheduled,
	}
}

// RenderCompletedEvent is published after a frame ran.
type RenderCompletedEvent struct {
	baseEvent
	App           string
	Frame         int
	Duration      time.Duration
	Subscriptions int
}

func NewRenderCompletedEvent(app string, frame int, d time.Duration, subscriptions int) RenderCompletedEvent {
	return RenderCompletedEvent{
		baseEvent:     newBaseEvent(TypeRenderCompleted),
		App:           app,
		Frame:         frame,
		Duration:      d,
		Subscriptions: subscriptions,
	}
}

// SubscriptionEvent is published when a subscription starts or stops.
type SubscriptionEvent struct {
	baseEvent
	Index  int
	Source string // name of the subscription source
}

func NewSubscriptionStartedEvent(index int, source string) SubscriptionEvent {
	return SubscriptionEvent{baseEvent: newBaseEvent(TypeSubscriptionStarted), Index: index, Source: source}
}

func NewSubscriptionStoppedEvent(index int, source string) SubscriptionEvent {
	return SubscriptionEvent{baseEvent: newBaseEvent(TypeSubscriptionStopped), Index: index, Source: source}
}

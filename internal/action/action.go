// Package action defines the values a program hands to the dispatcher:
// actions, effects and subscriptions.
//
// An Action is one of four variants, resolved by the dispatcher with a
// type switch:
//
//   - *Transition: a named function from (state, payload) to another action.
//   - Bound: a transition paired with a payload, or with a PayloadFunc that
//     derives the payload from the one the caller supplied.
//   - Update: a new state plus a list of effects to run after committing it.
//   - Plain: a new state.
//
// Transitions are compared by pointer, so declare them once at package
// level and bind payloads with With or Map.
package action

import "fmt"

// Action is a value the dispatcher can resolve.
type Action[S any] interface {
	actionOf(S)
}

// TransitionFunc computes the next action from the current state.
type TransitionFunc[S any] func(state S, payload any) Action[S]

// Transition is a named state transition.
type Transition[S any] struct {
	name string
	fn   TransitionFunc[S]
}

// NewTransition creates a transition. The name is used in logs and events.
func NewTransition[S any](name string, fn TransitionFunc[S]) *Transition[S] {
	return &Transition[S]{name: name, fn: fn}
}

func (t *Transition[S]) actionOf(S) {}

// Name returns the transition name.
func (t *Transition[S]) Name() string { return t.name }

// Apply runs the transition.
func (t *Transition[S]) Apply(state S, payload any) Action[S] {
	return t.fn(state, payload)
}

// PayloadFunc derives a payload from the payload the action was dispatched
// with, typically an event.
type PayloadFunc func(payload any) any

// Bound pairs a transition with its payload. When Payload is a PayloadFunc
// it is called with the dispatched payload instead.
type Bound[S any] struct {
	Transition *Transition[S]
	Payload    any
}

func (Bound[S]) actionOf(S) {}

func (b Bound[S]) transition() any {
	if b.Transition == nil {
		return nil
	}
	return b.Transition
}

// With binds a fixed payload to t.
func With[S any](t *Transition[S], payload any) Bound[S] {
	return Bound[S]{Transition: t, Payload: payload}
}

// Map binds a payload mapping function to t.
func Map[S any](t *Transition[S], f PayloadFunc) Bound[S] {
	return Bound[S]{Transition: t, Payload: f}
}

// Update commits State and then runs Effects in order. Effects may nest
// slices and contain nil or bool placeholders; see Flatten.
type Update[S any] struct {
	State   S
	Effects []any
}

func (Update[S]) actionOf(S) {}

// WithEffects builds an Update.
func WithEffects[S any](state S, effects ...any) Update[S] {
	return Update[S]{State: state, Effects: effects}
}

// Plain commits State.
type Plain[S any] struct {
	State S
}

func (Plain[S]) actionOf(S) {}

// Set builds a Plain action.
func Set[S any](state S) Plain[S] {
	return Plain[S]{State: state}
}

// When returns item if cond holds and nil otherwise, for conditional
// entries in effect and subscription lists.
func When(cond bool, item any) any {
	if cond {
		return item
	}
	return nil
}

// Name describes a for logs.
func Name[S any](a Action[S]) string {
	switch a := a.(type) {
	case nil:
		return "<nil>"
	case *Transition[S]:
		return a.name
	case Bound[S]:
		if a.Transition == nil {
			return "<unbound>"
		}
		return a.Transition.name
	case Update[S]:
		return fmt.Sprintf("update(%d effects)", len(a.Effects))
	case Plain[S]:
		return "set"
	default:
		return fmt.Sprintf("%T", a)
	}
}

type transitional interface {
	transition() any
}

// SameAction reports whether a and b are both bound to the identical
// transition. Their payloads are ignored.
func SameAction(a, b any) bool {
	x, ok := a.(transitional)
	if !ok {
		return false
	}
	y, ok := b.(transitional)
	if !ok {
		return false
	}
	tx := x.transition()
	return tx != nil && tx == y.transition()
}

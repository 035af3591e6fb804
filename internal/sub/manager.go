// Package sub keeps the set of running subscriptions in line with the list
// a program declares for its current state.
package sub

import (
	"fmt"

	"github.com/Iron-Ham/reactor/internal/action"
	"github.com/Iron-Ham/reactor/internal/event"
	"github.com/Iron-Ham/reactor/internal/logging"
	"github.com/Iron-Ham/reactor/internal/vnode"
)

// Manager owns the running subscriptions of one application. All methods
// must be called from the loop goroutine.
type Manager[S any] struct {
	post     func(func())
	dispatch action.Dispatch[S]
	active   []*instance[S]
	logger   *logging.Logger
	bus      *event.Bus
}

type instance[S any] struct {
	m      *Manager[S]
	source *action.Source[S]
	origin vnode.Props // props the subscription was started with
	props  vnode.Props // props of the latest declaration
	stop   action.StopFunc
}

// NewManager creates a Manager. post schedules a function on the loop
// goroutine and dispatch resolves an action there; subscriptions get a
// dispatch that goes through post, so they may call it from any goroutine.
// logger and bus may be nil.
func NewManager[S any](post func(func()), dispatch action.Dispatch[S], logger *logging.Logger, bus *event.Bus) *Manager[S] {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Manager[S]{
		post:     post,
		dispatch: dispatch,
		logger:   logger.WithComponent("subscriptions"),
		bus:      bus,
	}
}

// Reconcile diffs next against the running subscriptions position by
// position. A subscription is restarted when nothing ran at its position,
// its Source differs or ShouldRestart reports a change; the old
// one is always stopped before the new one starts. Otherwise the running
// instance is kept and adopts the new props. Running subscriptions past the
// end of next are stopped.
func (m *Manager[S]) Reconcile(next []action.Subscription[S]) {
	n := max(len(m.active), len(next))
	out := make([]*instance[S], 0, len(next))
	for i := 0; i < n; i++ {
		var old *instance[S]
		if i < len(m.active) {
			old = m.active[i]
		}
		if i >= len(next) {
			m.stopInstance(i, old)
			continue
		}
		s := next[i]
		if s.Source == nil {
			panic(fmt.Sprintf("sub: subscription %d has no source", i))
		}
		if old == nil || old.source != s.Source || ShouldRestart(old.props, s.Props) {
			m.stopInstance(i, old)
			out = append(out, m.startInstance(i, s))
			continue
		}
		old.props = s.Props
		out = append(out, old)
	}
	m.active = out
}

// StopAll stops every running subscription in order.
func (m *Manager[S]) StopAll() {
	for i, inst := range m.active {
		m.stopInstance(i, inst)
	}
	m.active = nil
}

// Len returns the number of running subscriptions.
func (m *Manager[S]) Len() int {
	return len(m.active)
}

func (m *Manager[S]) startInstance(i int, s action.Subscription[S]) *instance[S] {
	inst := &instance[S]{
		m:      m,
		source: s.Source,
		origin: s.Props,
		props:  s.Props,
	}
	m.logger.Debug("subscription started", "index", i, "source", s.Source.Name())
	inst.stop = s.Source.Start(inst.send, s.Props)
	m.bus.Publish(event.NewSubscriptionStartedEvent(i, s.Source.Name()))
	return inst
}

func (m *Manager[S]) stopInstance(i int, inst *instance[S]) {
	if inst == nil {
		return
	}
	if inst.stop != nil {
		inst.stop()
	}
	m.logger.Debug("subscription stopped", "index", i, "source", inst.source.Name())
	m.bus.Publish(event.NewSubscriptionStoppedEvent(i, inst.source.Name()))
}

// send is the dispatch handed to the start function.
func (inst *instance[S]) send(a action.Action[S], payload any) {
	inst.m.post(func() {
		inst.m.dispatch(inst.current(a), payload)
	})
}

// current maps an action the subscription was started with to the value
// the latest declaration holds under the same prop, so a kept subscription
// dispatches the swapped-in action.
func (inst *instance[S]) current(a action.Action[S]) action.Action[S] {
	if a == nil {
		return nil
	}
	for k, v := range inst.origin {
		if !action.SameAction(a, v) && !vnode.Same(a, v) {
			continue
		}
		if next, ok := inst.props[k].(action.Action[S]); ok {
			return next
		}
	}
	return a
}

// ShouldRestart reports whether any prop differs between old and next in a
// way other than the payload of a bound action.
func ShouldRestart(old, next vnode.Props) bool {
	for k, v := range old {
		if !vnode.Same(v, next[k]) && !action.SameAction(v, next[k]) {
			return true
		}
	}
	for k, v := range next {
		if _, seen := old[k]; seen {
			continue
		}
		if !vnode.Same(nil, v) {
			return true
		}
	}
	return false
}

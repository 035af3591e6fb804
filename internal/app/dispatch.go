package app

import (
	"fmt"

	"github.com/Iron-Ham/reactor/internal/action"
	"github.com/Iron-Ham/reactor/internal/event"
	"github.com/Iron-Ham/reactor/internal/host"
	"github.com/Iron-Ham/reactor/internal/vnode"
)

// resolve applies one action. Transitions recurse through the full
// dispatch chain with the payload the action was dispatched with, so
// effects produced further down see the original payload.
func (a *App[S]) resolve(act action.Action[S], payload any) {
	a.bus.Publish(event.NewActionDispatchedEvent(a.name, action.Name(act)))

	switch act := act.(type) {
	case nil:

	case *action.Transition[S]:
		a.dispatch(act.Apply(a.state, payload), payload)

	case action.Bound[S]:
		if act.Transition == nil {
			panic(fmt.Sprintf("app: bound action with payload %v has no transition", act.Payload))
		}
		a.dispatch(act.Transition.Apply(a.state, derive(act.Payload, payload)), payload)

	case action.Update[S]:
		a.commit(act.State)
		for fx := range action.Flatten[action.Effect[S]](act.Effects...) {
			fx.Run(a.Dispatch, fx.Props, payload)
		}

	case action.Plain[S]:
		a.commit(act.State)

	default:
		panic(fmt.Sprintf("app: unknown action type %T", act))
	}
}

func derive(bound, payload any) any {
	switch f := bound.(type) {
	case action.PayloadFunc:
		return f(payload)
	case func(any) any:
		return f(payload)
	default:
		return bound
	}
}

// commit stores s and schedules a frame unless one is pending. Committing
// the identical state again schedules nothing.
func (a *App[S]) commit(s S) {
	if a.committed && vnode.Same(any(a.state), any(s)) {
		return
	}
	a.mu.Lock()
	a.state = s
	a.committed = true
	a.mu.Unlock()

	scheduled := false
	if !a.renderPending {
		a.renderPending = true
		a.loop.RequestFrame(a.render)
		scheduled = true
	}
	a.bus.Publish(event.NewStateCommittedEvent(a.name, scheduled))
}

// HandleEvent is the listener the reconciler registers for event props. It
// dispatches the action stored for the event on the current target with
// the event as payload. Hosts deliver events on the loop goroutine.
func (a *App[S]) HandleEvent(e *host.Event) {
	if a.stopped || a.rec == nil {
		return
	}
	v := a.rec.Action(e.CurrentTarget, e.Type)
	if v == nil {
		return
	}
	act, ok := v.(action.Action[S])
	if !ok {
		a.logger.Warn("event prop is not an action", "event", e.Type, "type", fmt.Sprintf("%T", v))
		return
	}
	a.dispatch(act, e)
}

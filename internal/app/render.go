package app

import (
	"slices"
	"time"

	"github.com/Iron-Ham/reactor/internal/action"
	"github.com/Iron-Ham/reactor/internal/event"
	"github.com/Iron-Ham/reactor/internal/vnode"
)

// render runs one frame against the latest state: subscriptions first,
// then the view.
func (a *App[S]) render() {
	a.renderPending = false
	if a.stopped {
		return
	}
	start := time.Now()
	state := a.state

	if a.cfg.Subscriptions != nil {
		a.subs.Reconcile(slices.Collect(action.Flatten[action.Subscription[S]](a.cfg.Subscriptions(state)...)))
	}
	if a.cfg.View != nil && a.node != nil {
		next := vnode.Resolve(a.cfg.View(state), a.vdom)
		a.node = a.rec.Patch(a.node.ParentNode(), a.node, a.vdom, next)
		a.vdom = next
	}

	a.frames++
	d := time.Since(start)
	a.logger.Debug("frame rendered", "frame", a.frames, "duration", d, "subscriptions", a.subs.Len())
	a.bus.Publish(event.NewRenderCompletedEvent(a.name, a.frames, d, a.subs.Len()))
}

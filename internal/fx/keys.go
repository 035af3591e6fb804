package fx

import (
	"strings"

	"github.com/Iron-Ham/reactor/internal/action"
	"github.com/Iron-Ham/reactor/internal/host"
	"github.com/Iron-Ham/reactor/internal/vnode"
)

// KeyDown dispatches act with the *host.Event for every keydown event
// reaching target whose key is one of keys. No keys matches every key.
func KeyDown[S any](target host.EventTarget, act action.Action[S], keys ...string) action.Subscription[S] {
	return keySubscription(target, "keydown", act, keys)
}

// KeyUp is KeyDown for keyup events.
func KeyUp[S any](target host.EventTarget, act action.Action[S], keys ...string) action.Subscription[S] {
	return keySubscription(target, "keyup", act, keys)
}

func keySubscription[S any](target host.EventTarget, eventType string, act action.Action[S], keys []string) action.Subscription[S] {
	return action.Subscription[S]{
		Source: action.SourceFor[S]("fx.Keys", startKeys[S]),
		Props:  vnode.Props{"target": target, "type": eventType, "keys": strings.Join(keys, keySep), "action": act},
	}
}

// keySep joins the key filter into one comparable prop.
const keySep = "\x00"

type keyListener[S any] struct {
	dispatch action.Dispatch[S]
	act      action.Action[S]
	keys     map[string]bool
}

func (l *keyListener[S]) HandleEvent(e *host.Event) {
	if len(l.keys) == 0 || l.keys[e.Key] {
		l.dispatch(l.act, e)
	}
}

func startKeys[S any](d action.Dispatch[S], props vnode.Props) action.StopFunc {
	target := props["target"].(host.EventTarget)
	eventType := props["type"].(string)
	l := &keyListener[S]{
		dispatch: d,
		act:      props["action"].(action.Action[S]),
		keys:     make(map[string]bool),
	}
	if filter := props["keys"].(string); filter != "" {
		for _, k := range strings.Split(filter, keySep) {
			l.keys[k] = true
		}
	}
	target.AddEventListener(eventType, l)
	return func() { target.RemoveEventListener(eventType, l) }
}

package action

import (
	"sync"

	"github.com/Iron-Ham/reactor/internal/vnode"
)

// Dispatch hands an action to the dispatcher. Dispatch functions given to
// effects and subscriptions are safe to call from any goroutine.
type Dispatch[S any] func(a Action[S], payload any)

// Runner performs a side effect. payload is the payload of the action that
// produced the effect.
type Runner[S any] func(dispatch Dispatch[S], props vnode.Props, payload any)

// Effect is a one-shot side effect descriptor.
type Effect[S any] struct {
	Run   Runner[S]
	Props vnode.Props
}

// StopFunc ends a subscription.
type StopFunc func()

// StartFunc starts a subscription and returns the function that stops it.
type StartFunc[S any] func(dispatch Dispatch[S], props vnode.Props) StopFunc

// Source identifies one kind of subscription. Declarations at the same
// position are the same subscription only when they share a *Source, so a
// Source is created once and reused by every declaration of its kind.
type Source[S any] struct {
	name  string
	start StartFunc[S]
}

// NewSource creates a Source named name that runs start.
func NewSource[S any](name string, start StartFunc[S]) *Source[S] {
	if start == nil {
		panic("action: NewSource with a nil start function")
	}
	return &Source[S]{name: name, start: start}
}

// Name returns the name the Source was created with.
func (s *Source[S]) Name() string { return s.name }

// Start runs the start function.
func (s *Source[S]) Start(dispatch Dispatch[S], props vnode.Props) StopFunc {
	return s.start(dispatch, props)
}

type sourceKey struct {
	name  string
	state any // (*S)(nil), so one name yields one Source per state type
}

var (
	sourcesMu sync.Mutex
	sources   = make(map[sourceKey]any)
)

// SourceFor returns the Source registered under name for the state type S,
// creating it with start on first use. Generic libraries use it where they
// cannot declare one package variable per state type; later calls with the
// same name get the first Source whatever start they pass.
func SourceFor[S any](name string, start StartFunc[S]) *Source[S] {
	key := sourceKey{name: name, state: (*S)(nil)}
	sourcesMu.Lock()
	defer sourcesMu.Unlock()
	if src, ok := sources[key]; ok {
		return src.(*Source[S])
	}
	src := NewSource(name, start)
	sources[key] = src
	return src
}

// Subscription describes a long-lived background process. Two descriptors
// at the same position are the same subscription when they share a Source
// and their props only differ in the payloads of bound actions.
type Subscription[S any] struct {
	Source *Source[S]
	Props  vnode.Props
}

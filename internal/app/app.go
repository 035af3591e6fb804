// Package app is the dispatcher and scheduler: it owns an application's
// state, resolves actions, runs effects, and renders coalesced frames that
// reconcile subscriptions and patch the live tree.
//
// Every App method except Dispatch and State must run on the loop
// goroutine. Dispatch may be called from anywhere; it posts the action to
// the loop.
package app

import (
	"sync"

	"github.com/Iron-Ham/reactor/internal/action"
	"github.com/Iron-Ham/reactor/internal/errors"
	"github.com/Iron-Ham/reactor/internal/event"
	"github.com/Iron-Ham/reactor/internal/host"
	"github.com/Iron-Ham/reactor/internal/logging"
	"github.com/Iron-Ham/reactor/internal/reconcile"
	"github.com/Iron-Ham/reactor/internal/sub"
	"github.com/Iron-Ham/reactor/internal/vnode"
)

// Middleware wraps the dispatcher's resolve step. It sees every action
// resolved, including the ones transitions return.
type Middleware[S any] func(next action.Dispatch[S]) action.Dispatch[S]

// Config describes an application.
type Config[S any] struct {
	// Name identifies the application in logs and events.
	Name string
	// Init is dispatched once when the application starts.
	Init action.Action[S]
	// View renders the state. It is skipped when Node is nil.
	View func(S) *vnode.Node
	// Subscriptions declares the subscriptions for a state as a nested
	// list of action.Subscription values, nil and bools.
	Subscriptions func(S) []any
	// Node is the mount point; nil runs the application headless. The
	// node must have a parent and is taken over on the first frame.
	Node     host.Node
	Document host.Document
	Loop     Loop

	Middleware []Middleware[S]
	Logger     *logging.Logger
	Bus        *event.Bus
}

// App is a running application.
type App[S any] struct {
	name   string
	cfg    Config[S]
	loop   Loop
	logger *logging.Logger
	bus    *event.Bus
	subs   *sub.Manager[S]
	rec    *reconcile.Reconciler

	dispatch action.Dispatch[S]

	mu        sync.RWMutex
	state     S
	committed bool

	renderPending bool
	stopped       bool
	node          host.Node
	vdom          *vnode.Node
	frames        int
}

// Start validates cfg and posts the initial action to the loop. Nothing
// runs until the loop processes it.
func Start[S any](cfg Config[S]) (*App[S], error) {
	name := cfg.Name
	if name == "" {
		name = "app"
	}
	fail := func(msg string, cause error) (*App[S], error) {
		return nil, errors.NewRuntimeError(msg, cause).WithApp(name)
	}
	switch {
	case cfg.Loop == nil:
		return fail("cannot start", errors.ErrNoLoop)
	case cfg.Init == nil:
		return fail("cannot start", errors.ErrNoInit)
	case cfg.Node != nil && cfg.Document == nil:
		return fail("cannot mount", errors.ErrNoDocument)
	case cfg.Node != nil && cfg.Node.ParentNode() == nil:
		return fail("cannot mount", errors.ErrDetachedMount)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	logger = logger.WithApp(name)

	a := &App[S]{
		name:   name,
		cfg:    cfg,
		loop:   cfg.Loop,
		logger: logger,
		bus:    cfg.Bus,
		node:   cfg.Node,
	}
	if cfg.Node != nil {
		a.rec = reconcile.New(cfg.Document, a)
	}

	d := action.Dispatch[S](a.resolve)
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		d = cfg.Middleware[i](d)
	}
	a.dispatch = d
	a.subs = sub.NewManager(a.loop.Post, a.fromLoop, logger, cfg.Bus)

	a.loop.Post(func() {
		if a.node != nil {
			a.vdom = a.rec.Recycle(a.node)
		}
		a.logger.Info("application started", "mounted", a.node != nil)
		a.dispatch(cfg.Init, nil)
	})
	return a, nil
}

// Dispatch posts an action to the loop. It is safe for concurrent use and
// a no-op once the application is stopped.
func (a *App[S]) Dispatch(act action.Action[S], payload any) {
	a.loop.Post(func() { a.fromLoop(act, payload) })
}

func (a *App[S]) fromLoop(act action.Action[S], payload any) {
	if a.stopped {
		return
	}
	a.dispatch(act, payload)
}

// State returns the latest committed state.
func (a *App[S]) State() S {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Node returns the live node currently realizing the view, which changes
// when the view's root tag does.
func (a *App[S]) Node() host.Node {
	return a.node
}

// Frames returns how many frames have rendered.
func (a *App[S]) Frames() int {
	return a.frames
}

// Stop stops every subscription and ignores later dispatches and frames.
func (a *App[S]) Stop() {
	if a.stopped {
		return
	}
	a.stopped = true
	a.subs.StopAll()
	a.logger.Info("application stopped", "frames", a.frames)
}

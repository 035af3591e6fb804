// Package event provides a synchronous pub-sub bus for runtime lifecycle
// events.
//
// The dispatcher publishes an event for every dispatched action, committed
// state and completed frame; the subscription manager publishes one when a
// subscription starts or stops. Tools such as the terminal status line and
// tests subscribe to these without reaching into the runtime.
//
//	bus := event.NewBus(logger)
//	bus.Subscribe(event.TypeRenderCompleted, func(e event.Event) {
//	    done := e.(event.RenderCompletedEvent)
//	    log.Printf("frame %d took %s", done.Frame, done.Duration)
//	})
//
// Handlers run synchronously on the publishing goroutine, which for kernel
// events is the loop goroutine. A panicking handler is recovered and logged
// so it cannot take the loop down.
package event

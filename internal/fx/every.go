package fx

import (
	"context"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/Iron-Ham/reactor/internal/action"
	"github.com/Iron-Ham/reactor/internal/vnode"
)

// Every dispatches act with the current time.Time immediately and then once
// per interval.
func Every[S any](interval time.Duration, act action.Action[S]) action.Subscription[S] {
	return action.Subscription[S]{
		Source: action.SourceFor[S]("fx.Every", every[S]),
		Props:  vnode.Props{"interval": interval, "action": act},
	}
}

func every[S any](d action.Dispatch[S], props vnode.Props) action.StopFunc {
	interval := props["interval"].(time.Duration)
	act := props["action"].(action.Action[S])

	ctx, cancel := context.WithCancel(context.Background())
	var wg conc.WaitGroup
	wg.Go(func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		d(act, time.Now())
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				d(act, now)
			}
		}
	})
	return func() {
		cancel()
		wg.Wait()
	}
}

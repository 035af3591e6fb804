package fx

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"github.com/sourcegraph/conc"

	"github.com/Iron-Ham/reactor/internal/action"
	"github.com/Iron-Ham/reactor/internal/vnode"
)

// WatchDebounce is how long WatchFile waits for a burst of events on one
// file to settle. Editors commonly write a file several times per save.
const WatchDebounce = 50 * time.Millisecond

// WatchFile dispatches act with the path of every file in dir whose base
// name matches the glob pattern once it has been written, created, removed
// or renamed. A watcher that cannot be set up dispatches onError.
func WatchFile[S any](dir, pattern string, act, onError action.Action[S]) action.Subscription[S] {
	return action.Subscription[S]{
		Source: action.SourceFor[S]("fx.WatchFile", startWatch[S]),
		Props:  vnode.Props{"dir": dir, "pattern": pattern, "action": act, "error": onError},
	}
}

func startWatch[S any](d action.Dispatch[S], props vnode.Props) action.StopFunc {
	dir := props["dir"].(string)
	act := props["action"].(action.Action[S])
	onError, _ := props["error"].(action.Action[S])

	g, err := glob.Compile(props["pattern"].(string))
	if err != nil {
		fail(d, onError, err)
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fail(d, onError, err)
		return nil
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		fail(d, onError, err)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg conc.WaitGroup
	wg.Go(func() {
		watchLoop(ctx, watcher, g, func(path string) { d(act, path) })
	})
	return func() {
		cancel()
		_ = watcher.Close()
		wg.Wait()
	}
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, g glob.Glob, emit func(string)) {
	debounce := time.NewTimer(0)
	<-debounce.C

	pending := make(map[string]bool)
	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return

		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !g.Match(filepath.Base(ev.Name)) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending[ev.Name] = true
			debounce.Reset(WatchDebounce)

		case <-debounce.C:
			for path := range pending {
				emit(path)
			}
			clear(pending)

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

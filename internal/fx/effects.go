// Package fx is a library of ready-made effects and subscriptions.
//
// Effects and subscriptions report back only by dispatching actions.
// Failures a program should handle, such as a missing stored key or an
// unreadable file, are dispatched to a failure action with the error as
// payload; when no failure action is given the error panics.
package fx

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/reactor/internal/action"
	"github.com/Iron-Ham/reactor/internal/logging"
	"github.com/Iron-Ham/reactor/internal/storage"
	"github.com/Iron-Ham/reactor/internal/vnode"
)

// Dispatch dispatches act with the payload of the action that produced the
// effect.
func Dispatch[S any](act action.Action[S]) action.Effect[S] {
	return action.Effect[S]{Run: runDispatch[S], Props: vnode.Props{"action": act}}
}

func runDispatch[S any](d action.Dispatch[S], props vnode.Props, payload any) {
	d(props["action"].(action.Action[S]), payload)
}

// Delay dispatches act with no payload once after wait.
func Delay[S any](wait time.Duration, act action.Action[S]) action.Effect[S] {
	return action.Effect[S]{Run: runDelay[S], Props: vnode.Props{"wait": wait, "action": act}}
}

// AfterRender dispatches act shortly after the next frame.
func AfterRender[S any](act action.Action[S]) action.Effect[S] {
	return Delay(time.Millisecond, act)
}

func runDelay[S any](d action.Dispatch[S], props vnode.Props, _ any) {
	act := props["action"].(action.Action[S])
	time.AfterFunc(props["wait"].(time.Duration), func() { d(act, nil) })
}

// Log writes msg and args to logger at info level, with the payload type.
func Log[S any](logger *logging.Logger, msg string, args ...any) action.Effect[S] {
	return action.Effect[S]{
		Run: func(_ action.Dispatch[S], _ vnode.Props, payload any) {
			logger.Info(msg, append(slices.Clip(args), "payload_type", typeName(payload))...)
		},
		Props: vnode.Props{"message": msg},
	}
}

// StoreState encodes value as JSON under key. Errors go to onError.
func StoreState[S any](store storage.Store, key string, value any, onError action.Action[S]) action.Effect[S] {
	return action.Effect[S]{
		Run: func(d action.Dispatch[S], _ vnode.Props, _ any) {
			data, err := json.Marshal(value)
			if err == nil {
				err = store.Put(key, data)
			}
			if err != nil {
				fail(d, onError, err)
			}
		},
		Props: vnode.Props{"key": key},
	}
}

// RetrieveState decodes the JSON stored under key into a T and dispatches
// onSuccess with it. A missing key or a decoding failure dispatches
// onFailure with the error.
func RetrieveState[S, T any](store storage.Store, key string, onSuccess, onFailure action.Action[S]) action.Effect[S] {
	return action.Effect[S]{
		Run: func(d action.Dispatch[S], _ vnode.Props, _ any) {
			data, err := store.Get(key)
			if err != nil {
				fail(d, onFailure, err)
				return
			}
			var v T
			if err := json.Unmarshal(data, &v); err != nil {
				fail(d, onFailure, err)
				return
			}
			d(onSuccess, v)
		},
		Props: vnode.Props{"key": key},
	}
}

// ClearState deletes key.
func ClearState[S any](store storage.Store, key string, onError action.Action[S]) action.Effect[S] {
	return action.Effect[S]{
		Run: func(d action.Dispatch[S], _ vnode.Props, _ any) {
			if err := store.Delete(key); err != nil {
				fail(d, onError, err)
			}
		},
		Props: vnode.Props{"key": key},
	}
}

// ReadJSON reads path from fs, decodes it into a T and dispatches
// onSuccess with it, or onFailure with the error.
func ReadJSON[S, T any](fs afero.Fs, path string, onSuccess, onFailure action.Action[S]) action.Effect[S] {
	return action.Effect[S]{
		Run: func(d action.Dispatch[S], _ vnode.Props, _ any) {
			data, err := afero.ReadFile(fs, path)
			if err != nil {
				fail(d, onFailure, err)
				return
			}
			var v T
			if err := json.Unmarshal(data, &v); err != nil {
				fail(d, onFailure, err)
				return
			}
			d(onSuccess, v)
		},
		Props: vnode.Props{"path": path},
	}
}

func fail[S any](d action.Dispatch[S], onError action.Action[S], err error) {
	if onError == nil {
		panic(err)
	}
	d(onError, err)
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}

package app

import (
	"fmt"

	"github.com/Iron-Ham/reactor/internal/action"
	"github.com/Iron-Ham/reactor/internal/logging"
)

// Logging logs every resolved action at debug level.
func Logging[S any](logger *logging.Logger) Middleware[S] {
	logger = logger.WithComponent("dispatch")
	return func(next action.Dispatch[S]) action.Dispatch[S] {
		return func(a action.Action[S], payload any) {
			if payload == nil {
				logger.Debug("dispatch", "action", action.Name(a))
			} else {
				logger.Debug("dispatch", "action", action.Name(a), "payload", fmt.Sprintf("%T", payload))
			}
			next(a, payload)
		}
	}
}

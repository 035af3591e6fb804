// Package logging provides structured JSON logging for reactor.
//
// It wraps log/slog with a small Logger type that carries persistent
// attributes. The runtime tags its entries by component:
//
//	logger, err := logging.NewLogger(dir, logging.LevelDebug)
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	log := logger.WithApp("newsreader").WithComponent("dispatch")
//	log.Debug("action dispatched", "action", name)
//
// Entries are single JSON objects, one per line:
//
//	{"time":"...","level":"DEBUG","msg":"action dispatched","app":"newsreader","component":"dispatch","action":"Select"}
//
// When logging is disabled, callers use NopLogger so the runtime never has
// to check for nil.
package logging

// Package errors provides the error types and sentinels used across reactor,
// along with classification helpers.
//
// # Error Types
//
// Domain errors name the subsystem that failed:
//   - RuntimeError: the dispatcher, scheduler or a host could not start
//   - StorageError: a persisted-state backend failed
//
// Semantic errors describe common conditions:
//   - NotFoundError: a key or resource does not exist
//   - ValidationError: invalid configuration or input
//   - TimeoutError: an operation gave up waiting
//
// Only constructors and I/O boundaries return errors. Failures inside the
// kernel loop (effects, subscriptions, lazy views, host calls) are not
// converted; they propagate as panics.
//
// # Usage
//
//	err := errors.NewStorageError("open failed", cause).WithBackend("bolt").WithKey("read")
//	if errors.Is(err, errors.ErrStorageClosed) { ... }
//	if errors.IsRetryable(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Re-exported so callers only need this package.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity ranks how serious an error is.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityCritical
)

var severityNames = [...]string{"debug", "info", "warning", "error", "critical"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// Runtime sentinels.
var (
	// ErrNoLoop: Start was called without an event loop.
	ErrNoLoop = New("no event loop")
	// ErrNoInit: Start was called without an initial action.
	ErrNoInit = New("no initial action")
	// ErrDetachedMount: the mount node has no parent to patch into.
	ErrDetachedMount = New("mount node has no parent")
	// ErrNoDocument: a mount node was given without a document.
	ErrNoDocument = New("mount node without a document")
)

// Storage sentinels.
var (
	ErrKeyNotFound    = New("key not found")
	ErrStorageClosed  = New("storage is closed")
	ErrUnknownBackend = New("unknown storage backend")
)

var (
	ErrInvalidInput = New("invalid input")
	ErrTimeout      = New("operation timed out")
)

// Classified is implemented by every error type in this package.
type Classified interface {
	error
	Severity() Severity
	IsRetryable() bool
	IsUserFacing() bool
}

// detail is the state shared by all typed errors. attrs holds key/value
// pairs in the order they were first set; empty values are not printed.
type detail struct {
	kind      string
	message   string
	cause     error
	attrs     []string
	severity  Severity
	retryable bool
	// matches is a sentinel the error also reports through Is.
	matches error
}

func (d *detail) set(key, value string) {
	for i := 0; i < len(d.attrs); i += 2 {
		if d.attrs[i] == key {
			d.attrs[i+1] = value
			return
		}
	}
	d.attrs = append(d.attrs, key, value)
}

func (d *detail) Error() string {
	var b strings.Builder
	b.WriteString(d.kind)
	var shown []string
	for i := 0; i < len(d.attrs); i += 2 {
		if d.attrs[i+1] != "" {
			shown = append(shown, d.attrs[i]+"="+d.attrs[i+1])
		}
	}
	if len(shown) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(shown, ", "))
	}
	if b.Len() > 0 {
		b.WriteString(": ")
	}
	b.WriteString(d.message)
	if d.cause != nil {
		fmt.Fprintf(&b, ": %v", d.cause)
	}
	return b.String()
}

func (d *detail) Unwrap() error { return d.cause }

func (d *detail) Is(target error) bool {
	return d.matches != nil && target == d.matches
}

func (d *detail) Severity() Severity { return d.severity }
func (d *detail) IsRetryable() bool  { return d.retryable }

// IsUserFacing is true for every typed error.
func (d *detail) IsUserFacing() bool { return true }

// RuntimeError reports a failure to set up the runtime.
//
//	err := errors.NewRuntimeError("start failed", errors.ErrNoLoop).WithApp("newsreader")
//	fmt.Println(err) // "runtime error [app=newsreader]: start failed: no event loop"
type RuntimeError struct {
	detail
	App       string
	Component string
}

func NewRuntimeError(message string, cause error) *RuntimeError {
	return &RuntimeError{detail: detail{kind: "runtime error", message: message, cause: cause, severity: SeverityError}}
}

func (e *RuntimeError) WithApp(app string) *RuntimeError {
	e.App = app
	e.set("app", app)
	return e
}

func (e *RuntimeError) WithComponent(component string) *RuntimeError {
	e.Component = component
	e.set("component", component)
	return e
}

func (e *RuntimeError) Is(target error) bool {
	_, same := target.(*RuntimeError)
	return same || e.detail.Is(target)
}

// StorageError reports a failure in a persisted-state backend.
type StorageError struct {
	detail
	Backend string
	Key     string
}

func NewStorageError(message string, cause error) *StorageError {
	return &StorageError{detail: detail{kind: "storage error", message: message, cause: cause, severity: SeverityError}}
}

func (e *StorageError) WithBackend(backend string) *StorageError {
	e.Backend = backend
	e.set("backend", backend)
	return e
}

func (e *StorageError) WithKey(key string) *StorageError {
	e.Key = key
	e.set("key", key)
	return e
}

func (e *StorageError) WithRetryable(retryable bool) *StorageError {
	e.retryable = retryable
	return e
}

func (e *StorageError) Is(target error) bool {
	_, same := target.(*StorageError)
	return same || e.detail.Is(target)
}

// NotFoundError reports a missing resource. A missing "key" also matches
// ErrKeyNotFound.
//
//	fmt.Println(errors.NewNotFoundError("key", "read")) // "key 'read' not found"
type NotFoundError struct {
	detail
	ResourceType string
	ResourceID   string
}

func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	e := &NotFoundError{
		detail:       detail{message: fmt.Sprintf("%s '%s' not found", resourceType, resourceID), severity: SeverityWarning},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
	if resourceType == "key" {
		e.matches = ErrKeyNotFound
	}
	return e
}

func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

func (e *NotFoundError) Is(target error) bool {
	_, same := target.(*NotFoundError)
	return same || e.detail.Is(target)
}

// ValidationError reports invalid input or configuration. It matches
// ErrInvalidInput.
type ValidationError struct {
	detail
	Field string
	Value any
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{detail: detail{
		kind:     "validation error",
		message:  message,
		severity: SeverityWarning,
		matches:  ErrInvalidInput,
	}}
}

func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	e.set("field", field)
	return e
}

func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	e.set("value", fmt.Sprint(value))
	return e
}

func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

func (e *ValidationError) Is(target error) bool {
	_, same := target.(*ValidationError)
	return same || e.detail.Is(target)
}

// TimeoutError reports an operation that gave up waiting. It matches
// ErrTimeout and is retryable.
type TimeoutError struct {
	detail
	Operation string
	Duration  time.Duration
}

func NewTimeoutError(operation string, d time.Duration) *TimeoutError {
	return &TimeoutError{
		detail: detail{
			kind:      "timeout error",
			message:   fmt.Sprintf("%s (timeout: %s)", operation, d),
			severity:  SeverityWarning,
			retryable: true,
			matches:   ErrTimeout,
		},
		Operation: operation,
		Duration:  d,
	}
}

func (e *TimeoutError) WithCause(cause error) *TimeoutError {
	e.cause = cause
	return e
}

func (e *TimeoutError) Is(target error) bool {
	_, same := target.(*TimeoutError)
	return same || e.detail.Is(target)
}

// classify finds the first Classified error in err's tree.
func classify(err error) (Classified, bool) {
	var c Classified
	if err == nil || !As(err, &c) {
		return nil, false
	}
	return c, true
}

// IsRetryable reports whether err is transient.
func IsRetryable(err error) bool {
	if c, ok := classify(err); ok {
		return c.IsRetryable()
	}
	return err != nil && Is(err, ErrTimeout)
}

// IsUserFacing reports whether err's message is fit to show on screen.
func IsUserFacing(err error) bool {
	c, ok := classify(err)
	return ok && c.IsUserFacing()
}

// GetSeverity returns err's severity; SeverityError for foreign errors and
// SeverityDebug for nil.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	if c, ok := classify(err); ok {
		return c.Severity()
	}
	return SeverityError
}

// Wrap adds context to err, keeping it matchable with Is and As.
func Wrap(err error, message string) error {
	return Wrapf(err, "%s", message)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

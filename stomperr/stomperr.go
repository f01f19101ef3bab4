// Package stomperr defines the closed set of error kinds the core
// reports to its caller, per spec §7. It has no dependency on frame,
// command, or session so each of those packages can return typed errors
// without import cycles.
package stomperr

import "fmt"

// Kind is one of the closed set of error categories spec §7 defines.
type Kind string

const (
	KindParseError               Kind = "PARSE_ERROR"
	KindProtocolStateError       Kind = "PROTOCOL_STATE_ERROR"
	KindProtocolNegotiationError Kind = "PROTOCOL_NEGOTIATION_ERROR"
	KindUnknownSubscription      Kind = "UNKNOWN_SUBSCRIPTION"
	KindUnknownTransaction       Kind = "UNKNOWN_TRANSACTION"
	KindUnsupportedCommand       Kind = "UNSUPPORTED_COMMAND"
	KindInvalidHeader            Kind = "INVALID_HEADER"
	KindFailoverExhausted        Kind = "FAILOVER_EXHAUSTED"
)

// Error is the single error type the core returns to callers. Its Kind
// lets callers branch on category without string matching; Cause, when
// present, is the underlying error that triggered it.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, cause error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("stomp: %s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("stomp: %s: %s", e.Kind, e.Msg)
}

// Unwrap allows errors.Is/As to reach the underlying cause, if any.
// Error has no Cause() method, so github.com/pkg/errors.Cause stops at it.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether err is a *Error of kind k.
func Is(err error, k Kind) bool {
	se, ok := err.(*Error)
	return ok && se.Kind == k
}

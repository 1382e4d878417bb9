package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors. Every error returned by the wallet, the ledger or the store
// wraps exactly one of them, so callers can classify failures with Is.
var (
	// ErrUnauthorized is returned when the caller lacks the role required
	// by an operation.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = Register(3, "not found")

	// ErrModel is returned when a record fails validation before it is
	// persisted.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman marks a code path that correct callers never reach.
	ErrHuman = Register(7, "coding error")

	// ErrEmpty is returned when a required value is missing.
	ErrEmpty = Register(9, "value is empty")

	// ErrState is returned when a record is not in a state that allows the
	// requested transition.
	ErrState = Register(10, "invalid state")

	// ErrInvalidType is returned when a value has an unexpected type.
	ErrInvalidType = Register(11, "invalid type")

	// ErrAmount is returned for a zero or otherwise unusable amount.
	ErrAmount = Register(13, "invalid amount")

	// ErrInvalidInput covers malformed requests.
	ErrInvalidInput = Register(14, "invalid input")

	// ErrOverflow is returned when arithmetic would exceed the value type.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrDatabase is returned when the underlying store fails.
	ErrDatabase = Register(17, "database")

	// ErrAlreadyExecuted is returned when a terminal proposal is voted on or
	// executed again.
	ErrAlreadyExecuted = Register(30, "already executed")

	// ErrQuorumNotMet is returned when a proposal is executed while it has
	// fewer approvals than the committee threshold.
	ErrQuorumNotMet = Register(31, "quorum not met")

	// ErrUnknownAsset is returned when an asset without a registered policy
	// is transferred through the committee path.
	ErrUnknownAsset = Register(32, "unknown asset")

	// ErrInsufficientFunds is returned when the ledger reports a balance
	// shortfall.
	ErrInsufficientFunds = Register(33, "insufficient funds")

	// ErrCallReverted is returned when a delegated ledger call failed.
	ErrCallReverted = Register(34, "underlying call reverted")

	// ErrLimitExceeded is returned when a direct transfer exceeds the per
	// call limit of the asset policy.
	ErrLimitExceeded = Register(35, "limit exceeded")

	// ErrPanic is set by Recover. Its message is redacted in reports.
	ErrPanic = Register(111222, "panic")
)

// Register declares a root error with a unique code. It panics when the
// code is taken, so it must only be called while initializing packages.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// registry maps codes to their root error. Code 1 is reserved for internal
// errors that were not created from a registered root.
var registry = map[uint32]*Error{
	1: nil,
}

// Error is a root error. It carries a stable numeric code that is safe to
// expose to clients.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string { return e.desc }

// Code returns the numeric identifier of this root error.
func (e Error) Code() uint32 { return e.code }

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with formatting.
func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrap(e, fmt.Sprintf(format, args...))
}

// Is returns true if err was created from this root error. Wrapping layers
// are followed through Cause and groups match when any member does. A nil
// root matches only a nil error.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		if g, ok := err.(unpacker); ok {
			for _, child := range g.Unpack() {
				if e.Is(child) {
					return true
				}
			}
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap adds context to err and returns nil if err is nil, so it can wrap
// the final return of a function directly. A stack trace is recorded at the
// innermost wrap only.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, cause: err}
}

// Wrapf is Wrap with formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg   string
	cause error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.cause.Error()
}

func (e *wrappedError) Cause() error { return e.cause }

// Format prints the stack trace for %+v and the message otherwise.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	fmt.Fprint(s, e.Error())
	if verb != 'v' || !s.Flag('+') {
		return
	}
	if st := stackTrace(e); st != nil {
		fmt.Fprintf(s, "%+v", st)
	}
}

// Recover turns a panic into an ErrPanic assigned to err. It must be
// called with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

// stackTrace returns the innermost recorded stack trace or nil.
func stackTrace(err error) errors.StackTrace {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}

// isNilErr also catches typed nil pointers stored in an error interface.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	if v := reflect.ValueOf(err); v.Kind() == reflect.Ptr {
		return v.IsNil()
	}
	return false
}

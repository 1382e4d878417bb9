package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessCode is reported for a nil error.
	SuccessCode = 0

	// Errors that are not created from a registered root share a single
	// code and, outside of debug mode, a generic message.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// Report converts err into the code and message shown to a client, for
// example by the command line interface. Messages of internal errors are
// hidden unless debug is set. In debug mode the message includes the stack
// trace when one was recorded.
func Report(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessCode, ""
	}
	code := errCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalCode:
		return code, internalLog
	default:
		return code, err.Error()
	}
}

// errCode returns the code of the root error that err was created from or
// the internal code.
func errCode(err error) uint32 {
	type coder interface {
		Code() uint32
	}
	for !isNilErr(err) {
		if c, ok := err.(coder); ok {
			return c.Code()
		}
		c, ok := err.(causer)
		if !ok {
			return internalCode
		}
		err = c.Cause()
	}
	return SuccessCode
}

// Redact replaces internal errors and recovered panics with a generic error
// so implementation details do not leak. It returns err untouched in debug
// mode.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) || errCode(err) == internalCode {
		return errors.New(internalLog)
	}
	return err
}

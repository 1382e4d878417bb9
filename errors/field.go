package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Field attaches the name of the offending attribute to err. A nil err
// results in nil so validators can chain checks without branching.
//
// Names follow Go naming. Nested attributes are joined with a dot
// (Policy.Limit) and list elements use their index (Admins.2).
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) != 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{name: name, desc: description, cause: err}
}

// AppendField combines errs with a field error for the given name. Both
// arguments may be nil.
func AppendField(errs error, name string, fieldErr error) error {
	return Append(errs, Field(name, fieldErr, ""))
}

type fieldError struct {
	name  string
	desc  string
	cause error
}

func (e *fieldError) Error() string {
	if e.desc != "" {
		return fmt.Sprintf("field %q: %s: %s", e.name, e.desc, e.cause)
	}
	return fmt.Sprintf("field %q: %s", e.name, e.cause)
}

func (e *fieldError) Cause() error  { return e.cause }
func (e *fieldError) Field() string { return e.name }

// FieldErrors collects every error attached to the given field name. Groups
// created by Append are searched recursively.
func FieldErrors(err error, name string) []error {
	type fielder interface {
		Field() string
	}

	var found []error
	for !isNilErr(err) {
		if f, ok := err.(fielder); ok && f.Field() == name {
			return append(found, err)
		}
		if g, ok := err.(unpacker); ok {
			for _, child := range g.Unpack() {
				found = append(found, FieldErrors(child, name)...)
			}
			return found
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return found
}

// Append groups all non nil errors. It returns nil when there is nothing to
// report and the error itself when there is exactly one.
func Append(errs ...error) error {
	var group multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			group = append(group, m...)
			continue
		}
		group = append(group, e)
	}
	if len(group) == 0 {
		return nil
	}
	if len(group) == 1 {
		return group[0]
	}
	return group
}

// multiErr is a group of errors. Is matches if any member matches.
type multiErr []error

func (m multiErr) Error() string {
	lines := make([]string, 0, len(m))
	for _, e := range m {
		lines = append(lines, "* "+e.Error())
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(m), strings.Join(lines, "\n\t"))
}

func (m multiErr) Unpack() []error { return m }

type unpacker interface {
	Unpack() []error
}

/*
Package errors implements the error taxonomy of the custody engine.

Every error returned by the engine wraps one of the root errors declared in
this package. Root errors carry a stable numeric code, which allows a client
to distinguish types of errors and act accordingly.

If you want to register a custom error - use Register(code, description).
To create an error instance, wrap a root error at the point of failure:

	errors.Wrap(errors.ErrNotFound, "proposal")
	errors.Wrapf(errors.ErrQuorumNotMet, "%d of %d", have, want)

The first wrap attaches a stacktrace. Use `fmt.Printf` verbs to get more
context for the error:
	%s is just the error message
	%+v is the full stack trace

To classify an error, use the Is method of the root error:

	if errors.ErrAlreadyExecuted.Is(err) { ... }
*/
package errors

package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrQuorumNotMet,
			b:      Wrap(ErrQuorumNotMet, "1 of 2"),
			wantIs: true,
		},
		"comparison through many wraps": {
			a:      ErrInsufficientFunds,
			b:      Wrap(Wrapf(ErrInsufficientFunds, "have %d", 3), "transfer"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"field error unwraps": {
			a:      ErrEmpty,
			b:      Field("Owner", ErrEmpty, "required"),
			wantIs: true,
		},
		"any error of a group": {
			a:      ErrUnauthorized,
			b:      Append(ErrNotFound, Wrap(ErrUnauthorized, "admin")),
			wantIs: true,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is not not-nil": {
			a:      nil,
			b:      ErrNotFound,
			wantIs: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got:%v wanted:%v", got, tc.wantIs)
			}
		})
	}
}

func TestRegisterPanicsOnDuplicatedCode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	Register(ErrNotFound.Code(), "once more")
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "nothing"); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	if err := fn(); !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
}

func TestReport(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"nil error": {
			err:      nil,
			wantCode: SuccessCode,
			wantLog:  "",
		},
		"registered error": {
			err:      Wrap(ErrQuorumNotMet, "proposal 1"),
			wantCode: ErrQuorumNotMet.Code(),
			wantLog:  "proposal 1: quorum not met",
		},
		"stdlib error is redacted": {
			err:      fmt.Errorf("secret path /var/lib"),
			wantCode: internalCode,
			wantLog:  internalLog,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := Report(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Fatalf("want code %d, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Fatalf("want log %q, got %q", tc.wantLog, log)
			}
		})
	}

	code, log := Report(fmt.Errorf("secret"), true)
	if code != internalCode || !strings.Contains(log, "secret") {
		t.Fatalf("debug mode must reveal the message, got %d %q", code, log)
	}
}

func TestFieldErrors(t *testing.T) {
	err := Append(
		Field("Threshold", ErrInvalidInput, "must be positive"),
		Field("Admins", ErrEmpty, "required"),
		nil,
	)
	if errs := FieldErrors(err, "Threshold"); len(errs) != 1 || !ErrInvalidInput.Is(errs[0]) {
		t.Fatalf("unexpected threshold errors: %v", errs)
	}
	if errs := FieldErrors(err, "Owner"); len(errs) != 0 {
		t.Fatalf("unexpected owner errors: %v", errs)
	}
	if Append(nil, nil) != nil {
		t.Fatal("appending nothing must be nil")
	}
}

func TestRedact(t *testing.T) {
	cases := map[string]struct {
		err     error
		wantMsg string
	}{
		"registered error is kept": {
			err:     Wrap(ErrUnauthorized, "vote"),
			wantMsg: "vote: unauthorized",
		},
		"stdlib error is hidden": {
			err:     stdlib.New("disk /dev/sda1 failed"),
			wantMsg: internalLog,
		},
		"panic is hidden": {
			err:     Wrap(ErrPanic, "index out of range"),
			wantMsg: internalLog,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := Redact(tc.err, false).Error(); got != tc.wantMsg {
				t.Fatalf("want %q, got %q", tc.wantMsg, got)
			}
			if got := Redact(tc.err, true); got != tc.err {
				t.Fatal("debug mode must not change the error")
			}
		})
	}
}

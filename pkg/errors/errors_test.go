package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", New(ErrCodeInvalidInput, "width %d", -1), "INVALID_INPUT: width -1"},
		{"wrapped", Wrap(ErrCodeInvalidFormat, errors.New("unexpected EOF"), "decode %s", "ring.pbm"),
			"INVALID_FORMAT: decode ring.pbm: unexpected EOF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "write cache")
	if errors.Unwrap(err) != cause || !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable")
	}
}

func TestCodeLookup(t *testing.T) {
	inner := New(ErrCodeInvalidGraph, "vertex 3 links to 9")
	outer := Wrap(ErrCodeInvalidFormat, inner, "import graph.json")
	stage := fmt.Errorf("extrude: %w", inner)

	tests := []struct {
		name    string
		err     error
		code    Code
		invalid bool
		message string
	}{
		{"direct", inner, ErrCodeInvalidGraph, true, "vertex 3 links to 9"},
		{"outermost wins", outer, ErrCodeInvalidFormat, true, "import graph.json"},
		{"through fmt wrap", stage, ErrCodeInvalidGraph, true, "vertex 3 links to 9"},
		{"not invalid", New(ErrCodeFileNotFound, "ring.png"), ErrCodeFileNotFound, false, "ring.png"},
		{"plain", errors.New("boom"), "", false, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if got := IsInvalid(tt.err); got != tt.invalid {
				t.Errorf("IsInvalid = %v, want %v", got, tt.invalid)
			}
			if got := UserMessage(tt.err); got != tt.message {
				t.Errorf("UserMessage = %q, want %q", got, tt.message)
			}
		})
	}
}

func TestNilError(t *testing.T) {
	if GetCode(nil) != "" || Is(nil, ErrCodeInternal) || IsInvalid(nil) {
		t.Error("nil error should carry no code")
	}
}

func TestCodeInvalid(t *testing.T) {
	for _, c := range []Code{ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidGraph, ErrCodeInvalidConfig, ErrCodeInvalidPath} {
		if !c.Invalid() {
			t.Errorf("%s.Invalid() = false", c)
		}
	}
	for _, c := range []Code{ErrCodeNotFound, ErrCodeFileNotFound, ErrCodeInternal, ErrCodeUnsupported, ""} {
		if c.Invalid() {
			t.Errorf("%q.Invalid() = true", c)
		}
	}
}

package erruser

import (
	"errors"
	"testing"
)

func TestNew_withCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("exec: git: exit status 128")
	err := New("Could not read the repository.", cause)
	if err.Error() != "Could not read the repository." {
		t.Errorf("Error() = %q, want the user message only", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("cause must be reachable via Unwrap")
	}
}

func TestNew_withoutCause(t *testing.T) {
	t.Parallel()

	err := New("No changes to commit.", nil)
	if err.Error() != "No changes to commit." {
		t.Errorf("Error() = %q", err.Error())
	}
	if errors.Unwrap(err) != nil {
		t.Error("nil cause must not produce an Unwrap chain")
	}
}

func TestNewf(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := Newf(cause, "Invalid temperature %.1f; use 0.0 to 1.0.", 2.5)
	if err.Error() != "Invalid temperature 2.5; use 0.0 to 1.0." {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("cause must be wrapped")
	}
}

func TestErr_nilReceiver(t *testing.T) {
	t.Parallel()

	var e *Err
	if e.Error() != "" {
		t.Errorf("nil receiver Error() = %q, want empty", e.Error())
	}
	if e.Unwrap() != nil {
		t.Error("nil receiver Unwrap() must be nil")
	}
}

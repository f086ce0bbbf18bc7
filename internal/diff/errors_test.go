package diff

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapTool_PassesKnownKindsThrough(t *testing.T) {
	known := []error{
		&ValidationError{Field: "f", Message: "bad"},
		&FileSystemError{Path: "p", Message: "denied"},
		&SecurityError{Message: "blocked"},
		&ToolError{Tool: "Edit", Message: "not found"},
	}
	for _, err := range known {
		if got := WrapTool("Bash", "f.txt", err); got != err {
			t.Errorf("WrapTool rewrapped %T", err)
		}
	}
}

func TestWrapTool_WrapsUnknownAsToolError(t *testing.T) {
	plain := fmt.Errorf("something unexpected")
	wrapped := WrapTool("MultiEdit", "f.txt", plain)

	te, ok := wrapped.(*ToolError)
	if !ok {
		t.Fatalf("wrapped = %T, want *ToolError", wrapped)
	}
	if te.Tool != "MultiEdit" || te.Path != "f.txt" {
		t.Errorf("wrapper should carry tool name and path, got %+v", te)
	}
	if !errors.Is(wrapped, plain) {
		t.Error("wrapper should unwrap to the cause")
	}
}

func TestWrapTool_NilStaysNil(t *testing.T) {
	if WrapTool("Edit", "f.txt", nil) != nil {
		t.Error("WrapTool(nil) should be nil")
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{&ValidationError{Message: "m"}, KindValidation},
		{&FileSystemError{Message: "m"}, KindFileSystem},
		{&SecurityError{Message: "m"}, KindSecurity},
		{&ToolError{Message: "m"}, KindTool},
		{fmt.Errorf("plain"), KindTool},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Errorf("KindOf(%T) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestEnvelopes(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		env := (&ValidationError{Field: "edits", Message: "too many"}).Envelope()
		if env["error"] != "validation_error" || env["field"] != "edits" {
			t.Errorf("envelope = %v", env)
		}
	})

	t.Run("security", func(t *testing.T) {
		env := (&SecurityError{Pattern: "rm -rf /", Message: "blocked"}).Envelope()
		if env["error"] != "security_error" || env["pattern"] != "rm -rf /" {
			t.Errorf("envelope = %v", env)
		}
	})

	t.Run("tool", func(t *testing.T) {
		env := (&ToolError{Tool: "Edit", Path: "f.txt", Message: "not found"}).Envelope()
		if env["error"] != "tool_error" || env["tool"] != "Edit" || env["path"] != "f.txt" {
			t.Errorf("envelope = %v", env)
		}
	})

	t.Run("filesystem", func(t *testing.T) {
		env := (&FileSystemError{Path: "/x", Message: "permission denied"}).Envelope()
		if env["error"] != "filesystem_error" || env["path"] != "/x" {
			t.Errorf("envelope = %v", env)
		}
	})
}

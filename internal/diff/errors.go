package diff

import (
	"fmt"
)

// Kind classifies engine errors for the protocol layer's error envelopes.
type Kind string

const (
	// KindValidation - malformed or out-of-range caller input, always caller-correctable
	KindValidation Kind = "validation_error"

	// KindFileSystem - path/permission/encoding problems surfaced unchanged from the data layer
	KindFileSystem Kind = "filesystem_error"

	// KindSecurity - content failed a policy check, never silently downgraded
	KindSecurity Kind = "security_error"

	// KindTool - tool-specific semantic failure, or any unexpected lower-level
	// error wrapped with the offending tool name and path
	KindTool Kind = "tool_error"
)

// EngineError is the interface satisfied by every error the engine returns.
// Envelope produces the structured form the protocol layer serializes.
type EngineError interface {
	error
	Kind() Kind
	Envelope() map[string]any
}

// ValidationError reports malformed caller input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Kind() Kind { return KindValidation }

func (e *ValidationError) Envelope() map[string]any {
	env := map[string]any{
		"error":   string(KindValidation),
		"message": e.Message,
	}
	if e.Field != "" {
		env["field"] = e.Field
	}
	return env
}

// Validationf creates a formatted ValidationError for a field.
func Validationf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// FileSystemError carries a path/permission/encoding problem from outside
// the engine. The engine itself performs no I/O; collaborators use this kind
// so failures cross the boundary untouched.
type FileSystemError struct {
	Path    string
	Message string
	Err     error
}

func (e *FileSystemError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

func (e *FileSystemError) Kind() Kind { return KindFileSystem }

func (e *FileSystemError) Unwrap() error { return e.Err }

func (e *FileSystemError) Envelope() map[string]any {
	env := map[string]any{
		"error":   string(KindFileSystem),
		"message": e.Message,
	}
	if e.Path != "" {
		env["path"] = e.Path
	}
	return env
}

// FileSystemErrorf creates a formatted FileSystemError for a path.
func FileSystemErrorf(path string, err error, format string, args ...any) *FileSystemError {
	return &FileSystemError{Path: path, Message: fmt.Sprintf(format, args...), Err: err}
}

// SecurityError reports content that failed a policy check.
type SecurityError struct {
	Pattern string
	Message string
}

func (e *SecurityError) Error() string { return e.Message }

func (e *SecurityError) Kind() Kind { return KindSecurity }

func (e *SecurityError) Envelope() map[string]any {
	env := map[string]any{
		"error":   string(KindSecurity),
		"message": e.Message,
	}
	if e.Pattern != "" {
		env["pattern"] = e.Pattern
	}
	return env
}

// ToolError reports a tool-specific semantic failure, e.g. a missing
// substring. It also serves as the wrapper for unexpected lower-level errors.
type ToolError struct {
	Tool    string
	Path    string
	Message string
	Err     error
}

func (e *ToolError) Error() string {
	if e.Tool != "" {
		return fmt.Sprintf("%s: %s", e.Tool, e.Message)
	}
	return e.Message
}

func (e *ToolError) Kind() Kind { return KindTool }

func (e *ToolError) Unwrap() error { return e.Err }

func (e *ToolError) Envelope() map[string]any {
	env := map[string]any{
		"error":   string(KindTool),
		"message": e.Message,
	}
	if e.Tool != "" {
		env["tool"] = e.Tool
	}
	if e.Path != "" {
		env["path"] = e.Path
	}
	return env
}

// ToolErrorf creates a formatted ToolError for a tool and path.
func ToolErrorf(tool, path, format string, args ...any) *ToolError {
	return &ToolError{Tool: tool, Path: path, Message: fmt.Sprintf(format, args...)}
}

// WrapTool applies the propagation policy: the four known kinds pass through
// unchanged, anything else is wrapped as a ToolError carrying the tool name
// and target path.
func WrapTool(tool, path string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(EngineError); ok {
		return err
	}
	return &ToolError{Tool: tool, Path: path, Message: err.Error(), Err: err}
}

// KindOf returns the error's kind, or KindTool for anything outside the
// taxonomy (matching the wrap-unknown policy).
func KindOf(err error) Kind {
	if ee, ok := err.(EngineError); ok {
		return ee.Kind()
	}
	return KindTool
}

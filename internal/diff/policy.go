package diff

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Limits holds the admission-control ceilings applied before any generator
// does real work. Oversized requests are rejected up front so worst-case
// per-call latency stays bounded.
type Limits struct {
	// MaxContentBytes caps any single content field (original, new, stdout...)
	MaxContentBytes int
	// MaxLineBytes caps a single line within a content field
	MaxLineBytes int
	// MaxEdits caps the edit list passed to MultiEdit
	MaxEdits int
	// MaxCommandBytes caps the command text passed to Bash
	MaxCommandBytes int
	// MaxAffectedFiles caps the side-effect list passed to Bash
	MaxAffectedFiles int
	// FullDiffThreshold is the combined old+new size below which an exact
	// line diff is always computed
	FullDiffThreshold int
	// SummaryLineThreshold is the per-side line count above which a large
	// input gets a synthetic summary instead of hunks
	SummaryLineThreshold int
	// WindowLines is the per-side prefix window used for truncated diffs
	WindowLines int
}

// DefaultLimits returns the ceilings used when no config overrides them.
func DefaultLimits() Limits {
	return Limits{
		MaxContentBytes:      10 * 1024 * 1024,
		MaxLineBytes:         100 * 1024,
		MaxEdits:             1000,
		MaxCommandBytes:      100 * 1024,
		MaxAffectedFiles:     100,
		FullDiffThreshold:    1024 * 1024,
		SummaryLineThreshold: 1000,
		WindowLines:          400,
	}
}

// Engine computes tool diffs. Every method is a pure function of its
// arguments: no I/O, no shared mutable state, safe for concurrent use.
type Engine struct {
	limits Limits
}

// NewEngine creates an Engine with the given limits. Zero-valued ceilings
// fall back to the defaults.
func NewEngine(limits Limits) *Engine {
	def := DefaultLimits()
	if limits.MaxContentBytes <= 0 {
		limits.MaxContentBytes = def.MaxContentBytes
	}
	if limits.MaxLineBytes <= 0 {
		limits.MaxLineBytes = def.MaxLineBytes
	}
	if limits.MaxEdits <= 0 {
		limits.MaxEdits = def.MaxEdits
	}
	if limits.MaxCommandBytes <= 0 {
		limits.MaxCommandBytes = def.MaxCommandBytes
	}
	if limits.MaxAffectedFiles <= 0 {
		limits.MaxAffectedFiles = def.MaxAffectedFiles
	}
	if limits.FullDiffThreshold <= 0 {
		limits.FullDiffThreshold = def.FullDiffThreshold
	}
	if limits.SummaryLineThreshold <= 0 {
		limits.SummaryLineThreshold = def.SummaryLineThreshold
	}
	if limits.WindowLines <= 0 {
		limits.WindowLines = def.WindowLines
	}
	return &Engine{limits: limits}
}

// Limits returns the engine's effective ceilings.
func (e *Engine) Limits() Limits { return e.limits }

// scriptInjectionPatterns match content that is rejected outright. These are
// pattern checks, not a sandbox: the goal is to refuse obviously hostile
// payloads before they reach a display surface.
var scriptInjectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script[\s>]`),
	regexp.MustCompile(`(?i)javascript:\s*[a-z]`),
	regexp.MustCompile(`(?i)<iframe[\s>]`),
	regexp.MustCompile(`(?i)\bon(?:error|load|click)\s*=\s*["']`),
}

// dangerousCommandFragments block commands the engine refuses to describe.
var dangerousCommandFragments = []string{
	"rm -rf /",
	"rm -rf ~",
	"sudo ",
	"sudo\t",
	"mkfs",
	"dd if=",
	":(){ :|:& };:",
	"shutdown",
	"reboot",
	"chroot ",
	"> /dev/sda",
}

// checkFilePath validates a target path: non-empty, no NUL or newline bytes.
func (e *Engine) checkFilePath(path string) error {
	if path == "" {
		return Validationf("file_path", "file path must not be empty")
	}
	if strings.ContainsAny(path, "\x00\n\r") {
		return Validationf("file_path", "file path contains control characters")
	}
	return nil
}

// checkFilename applies the stricter write-path rules: valid path plus a
// recognizable extension, used downstream for content-type-aware display.
func (e *Engine) checkFilename(path string) error {
	if err := e.checkFilePath(path); err != nil {
		return err
	}
	base := filepath.Base(path)
	if strings.ContainsAny(base, "<>|\"") {
		return Validationf("file_path", "filename %q contains invalid characters", base)
	}
	if ext := filepath.Ext(base); ext == "" || ext == "." {
		return Validationf("file_path", "filename %q has no recognizable extension", base)
	}
	return nil
}

// checkContent validates a content field against size, line-length and
// injection ceilings.
func (e *Engine) checkContent(field, content string) error {
	if len(content) > e.limits.MaxContentBytes {
		return Validationf(field, "content exceeds %d bytes (got %d)", e.limits.MaxContentBytes, len(content))
	}
	if err := e.checkLineLengths(field, content); err != nil {
		return err
	}
	for _, pat := range scriptInjectionPatterns {
		if loc := pat.FindStringIndex(content); loc != nil {
			return &SecurityError{
				Pattern: pat.String(),
				Message: fmt.Sprintf("%s contains content matching a blocked injection pattern", field),
			}
		}
	}
	return nil
}

func (e *Engine) checkLineLengths(field, content string) error {
	start := 0
	line := 1
	for i := 0; i <= len(content); i++ {
		if i == len(content) || content[i] == '\n' {
			if i-start > e.limits.MaxLineBytes {
				return Validationf(field, "line %d exceeds %d bytes", line, e.limits.MaxLineBytes)
			}
			start = i + 1
			line++
		}
	}
	return nil
}

// checkCommand validates command text: non-empty, bounded, and free of
// recognized dangerous fragments. A match is a SecurityError, never
// downgraded.
func (e *Engine) checkCommand(command string) error {
	if strings.TrimSpace(command) == "" {
		return Validationf("command", "command must not be empty")
	}
	if len(command) > e.limits.MaxCommandBytes {
		return Validationf("command", "command exceeds %d bytes", e.limits.MaxCommandBytes)
	}
	lower := strings.ToLower(command)
	for _, frag := range dangerousCommandFragments {
		if strings.Contains(lower, frag) {
			return &SecurityError{
				Pattern: strings.TrimSpace(frag),
				Message: fmt.Sprintf("command contains blocked fragment %q", strings.TrimSpace(frag)),
			}
		}
	}
	return nil
}

// checkExitCode enforces the POSIX exit status range.
func (e *Engine) checkExitCode(code int) error {
	if code < 0 || code > 255 {
		return Validationf("exit_code", "exit code must be in [0,255], got %d", code)
	}
	return nil
}

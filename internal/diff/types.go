// Package diff turns raw before/after content (or an ordered edit list) into
// tagged, JSON-representable tool diffs with unified-diff text. Every
// generator is a pure function: no file I/O, no command execution, no shared
// state. Callers supply already-read content; the engine validates, computes
// and returns a result or a typed error.
package diff

// ChangeType is the coarse classification of an operation's effect.
type ChangeType string

const (
	ChangeCreate ChangeType = "create"
	ChangeUpdate ChangeType = "update"
	ChangeDelete ChangeType = "delete"
	ChangeRead   ChangeType = "read"
)

// Valid reports whether the change type is one of the four known values.
func (c ChangeType) Valid() bool {
	switch c {
	case ChangeCreate, ChangeUpdate, ChangeDelete, ChangeRead:
		return true
	}
	return false
}

// UnifiedDiff pairs two full text versions with their rendered patch.
// DiffText is empty exactly when OldVersion == NewVersion.
type UnifiedDiff struct {
	Filename   string `json:"filename"`
	OldVersion string `json:"old_version"`
	NewVersion string `json:"new_version"`
	DiffText   string `json:"diff_text"`
}

// ToolDiff is the closed set of per-tool diff results. Each variant is a
// plain JSON-representable struct; Tool reports the tag the protocol layer
// dispatches on.
type ToolDiff interface {
	Tool() string
	isToolDiff()
}

// Edit is one string substitution. Order matters in a sequence: edit i
// operates on the output of edit i-1.
type Edit struct {
	OldString  string `json:"old_string"`
	NewString  string `json:"new_string"`
	ReplaceAll bool   `json:"replace_all"`
}

// Reverse returns the best-effort inverse edit. When ReplaceAll is true this
// is not a true inverse: collapsing many distinct occurrences into one new
// value cannot be undone by swapping the pair back. Callers treat rollback
// as advisory.
func (ed Edit) Reverse() Edit {
	return Edit{OldString: ed.NewString, NewString: ed.OldString, ReplaceAll: ed.ReplaceAll}
}

// EditDiff is the result of a single-replacement edit.
type EditDiff struct {
	OldString  string      `json:"old_string"`
	NewString  string      `json:"new_string"`
	ReplaceAll bool        `json:"replace_all"`
	Unified    UnifiedDiff `json:"unified_diff"`
}

func (EditDiff) Tool() string { return "Edit" }
func (EditDiff) isToolDiff()  {}

// WriteDiff is the result of a file creation or full overwrite.
type WriteDiff struct {
	IsNewFile       bool        `json:"is_new_file"`
	NewContent      string      `json:"new_content"`
	PreviousContent *string     `json:"previous_content,omitempty"`
	Unified         UnifiedDiff `json:"unified_diff"`
}

func (WriteDiff) Tool() string { return "Write" }
func (WriteDiff) isToolDiff()  {}

// IntermediateState is the snapshot captured after each successfully applied
// edit in a multi-edit sequence.
type IntermediateState struct {
	Content          string `json:"content"`
	DiffFromPrevious string `json:"diff_from_previous"`
}

// RollbackStep records the best-effort reverse of an applied edit.
type RollbackStep struct {
	EditIndex   int  `json:"edit_index"`
	ReverseEdit Edit `json:"reverse_edit"`
}

// MultiEditDiff is the result of an ordered multi-edit sequence. On success
// IntermediateStates and RollbackSteps each have one entry per edit.
type MultiEditDiff struct {
	Edits              []Edit              `json:"edits"`
	Unified            UnifiedDiff         `json:"unified_diff"`
	IntermediateStates []IntermediateState `json:"intermediate_states"`
	RollbackSteps      []RollbackStep      `json:"rollback_steps"`
}

func (MultiEditDiff) Tool() string { return "MultiEdit" }
func (MultiEditDiff) isToolDiff()  {}

// AffectedFile describes one file-system side effect attributed to a
// command. Unified is present only for updates where both before and after
// content were reported.
type AffectedFile struct {
	FilePath   string       `json:"file_path"`
	ChangeType ChangeType   `json:"change_type"`
	Unified    *UnifiedDiff `json:"unified_diff,omitempty"`
}

// BashDiff carries a command's captured output plus diffs for any files the
// caller reports it changed. The engine never executes anything; it only
// describes what the caller observed.
type BashDiff struct {
	Command       string         `json:"command"`
	Stdout        string         `json:"stdout"`
	Stderr        string         `json:"stderr"`
	ExitCode      int            `json:"exit_code"`
	AffectedFiles []AffectedFile `json:"affected_files"`
}

func (BashDiff) Tool() string { return "Bash" }
func (BashDiff) isToolDiff()  {}

// ReadDiff describes a read, with optional line-range metadata. No diff is
// produced; content passes through unchanged.
type ReadDiff struct {
	Content   string `json:"content"`
	LinesRead int    `json:"lines_read"`
	StartLine *int   `json:"start_line,omitempty"`
	EndLine   *int   `json:"end_line,omitempty"`
}

func (ReadDiff) Tool() string { return "Read" }
func (ReadDiff) isToolDiff()  {}

// SideEffect is the caller-observed description of one file-system change
// attributed to a command execution.
type SideEffect struct {
	FilePath      string     `json:"file_path"`
	ChangeType    ChangeType `json:"change_type"`
	BeforeContent *string    `json:"before_content,omitempty"`
	AfterContent  *string    `json:"after_content,omitempty"`
}

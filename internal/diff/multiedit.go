package diff

import (
	"strconv"
	"strings"
)

// MultiEdit applies an ordered list of substitutions, each against the
// result of the previous one, and returns the per-step snapshots, the
// best-effort rollback steps, and a single summary diff computed between the
// original content and the final result (not a concatenation of step diffs).
//
// Order sensitivity is intentional: a later edit may target text produced by
// an earlier one, and two edits competing for the same non-replaceAll match
// fail on the second once the first has consumed it, unless other
// occurrences remain.
//
// The call either fully succeeds or fails: when edit i's old string is
// absent the error names the 1-based index and nothing is returned, so no
// partially-built diff is ever observable.
func (e *Engine) MultiEdit(path, original string, edits []Edit) (*MultiEditDiff, error) {
	if err := e.checkFilePath(path); err != nil {
		return nil, err
	}
	if err := e.checkContent("original", original); err != nil {
		return nil, err
	}
	if len(edits) > e.limits.MaxEdits {
		return nil, Validationf("edits", "edit list exceeds %d entries (got %d)", e.limits.MaxEdits, len(edits))
	}
	for i, ed := range edits {
		if err := e.checkContent(editField(i), ed.NewString); err != nil {
			return nil, err
		}
	}

	states := make([]IntermediateState, 0, len(edits))
	rollbacks := make([]RollbackStep, 0, len(edits))
	current := original

	for i, ed := range edits {
		if ed.OldString == ed.NewString {
			// No-op step: snapshot unchanged content with an empty diff.
			states = append(states, IntermediateState{Content: current})
			rollbacks = append(rollbacks, RollbackStep{EditIndex: i, ReverseEdit: ed.Reverse()})
			continue
		}

		if ed.OldString != "" && !strings.Contains(current, ed.OldString) {
			return nil, ToolErrorf("MultiEdit", path, "edit %d: old string not found: %s", i+1, snippet(ed.OldString))
		}

		next, err := applyEdit(current, ed, "MultiEdit", path)
		if err != nil {
			return nil, err
		}

		// Step diffs go through the same size-aware renderer as the summary:
		// a large file edited many times must not pay an exact diff per step.
		stepDiff, err := e.renderUnified(path, path, path, current, next)
		if err != nil {
			return nil, WrapTool("MultiEdit", path, err)
		}
		states = append(states, IntermediateState{Content: next, DiffFromPrevious: stepDiff.DiffText})
		rollbacks = append(rollbacks, RollbackStep{EditIndex: i, ReverseEdit: ed.Reverse()})
		current = next
	}

	unified, err := e.renderUnified(path, path, path, original, current)
	if err != nil {
		return nil, WrapTool("MultiEdit", path, err)
	}

	return &MultiEditDiff{
		Edits:              edits,
		Unified:            unified,
		IntermediateStates: states,
		RollbackSteps:      rollbacks,
	}, nil
}

func editField(i int) string {
	return "edits[" + strconv.Itoa(i) + "].new_string"
}

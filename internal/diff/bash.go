package diff

import (
	"strconv"
)

// Bash describes a shell command's captured output plus diffs for any files
// the caller reports it changed. Command text, streams and exit code are
// carried through unmodified; the engine never executes or interprets the
// command. The policy check on the command text is pattern-based rejection,
// not a sandbox.
func (e *Engine) Bash(command, stdout, stderr string, exitCode int, effects []SideEffect) (*BashDiff, error) {
	if err := e.checkCommand(command); err != nil {
		return nil, err
	}
	if err := e.checkExitCode(exitCode); err != nil {
		return nil, err
	}
	if err := e.checkContent("stdout", stdout); err != nil {
		return nil, err
	}
	if err := e.checkContent("stderr", stderr); err != nil {
		return nil, err
	}
	if len(effects) > e.limits.MaxAffectedFiles {
		return nil, Validationf("side_effects", "side effect list exceeds %d entries (got %d)", e.limits.MaxAffectedFiles, len(effects))
	}

	affected := make([]AffectedFile, 0, len(effects))
	for i, eff := range effects {
		field := "side_effects[" + strconv.Itoa(i) + "]"
		if err := e.checkFilePath(eff.FilePath); err != nil {
			return nil, Validationf(field, "%s", err.Error())
		}
		if !eff.ChangeType.Valid() {
			return nil, Validationf(field, "unknown change type %q", string(eff.ChangeType))
		}

		entry := AffectedFile{FilePath: eff.FilePath, ChangeType: eff.ChangeType}

		// A diff needs both sides: create and delete have one side undefined
		// by definition, so only a fully-reported update produces one.
		if eff.ChangeType == ChangeUpdate && eff.BeforeContent != nil && eff.AfterContent != nil {
			if err := e.checkContent(field+".before_content", *eff.BeforeContent); err != nil {
				return nil, err
			}
			if err := e.checkContent(field+".after_content", *eff.AfterContent); err != nil {
				return nil, err
			}
			unified, err := e.renderUnified(eff.FilePath, eff.FilePath, eff.FilePath, *eff.BeforeContent, *eff.AfterContent)
			if err != nil {
				return nil, WrapTool("Bash", eff.FilePath, err)
			}
			entry.Unified = &unified
		}
		affected = append(affected, entry)
	}

	return &BashDiff{
		Command:       command,
		Stdout:        stdout,
		Stderr:        stderr,
		ExitCode:      exitCode,
		AffectedFiles: affected,
	}, nil
}

package diff

// Write computes the diff for a file creation or full overwrite. A nil
// previous means the file is new; its old version for diffing is the empty
// string and the diff headers mark the new-file case.
func (e *Engine) Write(path string, previous *string, next string) (*WriteDiff, error) {
	if err := e.checkFilename(path); err != nil {
		return nil, err
	}
	if err := e.checkContent("new_content", next); err != nil {
		return nil, err
	}

	isNewFile := previous == nil
	oldContent := ""
	fromLabel := "/dev/null"
	if !isNewFile {
		oldContent = *previous
		if err := e.checkContent("previous_content", oldContent); err != nil {
			return nil, err
		}
		fromLabel = path + " (original)"
	}

	unified, err := e.renderUnified(path, fromLabel, path, oldContent, next)
	if err != nil {
		return nil, WrapTool("Write", path, err)
	}

	return &WriteDiff{
		IsNewFile:       isNewFile,
		NewContent:      next,
		PreviousContent: previous,
		Unified:         unified,
	}, nil
}

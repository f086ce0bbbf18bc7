package diff

import (
	"strings"
)

// emptyBracesBlock is the literal pattern the empty-oldString insertion
// heuristic looks for. Inherited behavior: when oldString is empty the tool
// historically inserted inside the first empty-braces block if the file had
// one, and appended otherwise. Kept narrow and undocumented as a general
// insert API on purpose.
const emptyBracesBlock = "{\n}"

// Edit computes the diff for a single string substitution.
//
// If replaceAll, every non-overlapping left-to-right occurrence is replaced;
// otherwise only the first. oldStr == newStr is a no-op with an empty diff.
// An empty oldStr triggers the insertion heuristic. A non-empty oldStr that
// is absent from the content is a ToolError.
func (e *Engine) Edit(path, original, oldStr, newStr string, replaceAll bool) (*EditDiff, error) {
	if err := e.checkFilePath(path); err != nil {
		return nil, err
	}
	if err := e.checkContent("original", original); err != nil {
		return nil, err
	}
	if err := e.checkContent("new_string", newStr); err != nil {
		return nil, err
	}

	updated, err := applyEdit(original, Edit{OldString: oldStr, NewString: newStr, ReplaceAll: replaceAll}, "Edit", path)
	if err != nil {
		return nil, err
	}

	unified, err := e.renderUnified(path, path, path, original, updated)
	if err != nil {
		return nil, WrapTool("Edit", path, err)
	}

	return &EditDiff{
		OldString:  oldStr,
		NewString:  newStr,
		ReplaceAll: replaceAll,
		Unified:    unified,
	}, nil
}

// applyEdit applies one substitution to content and returns the result.
// Shared by the single-edit and multi-edit paths so both have identical
// replacement semantics.
func applyEdit(content string, ed Edit, tool, path string) (string, error) {
	if ed.OldString == ed.NewString {
		return content, nil
	}
	if ed.OldString == "" {
		return insertContent(content, ed.NewString), nil
	}
	if !strings.Contains(content, ed.OldString) {
		return "", ToolErrorf(tool, path, "old string not found: %s", snippet(ed.OldString))
	}
	return replaceOccurrences(content, ed.OldString, ed.NewString, ed.ReplaceAll), nil
}

// replaceOccurrences performs the substitution with index-based slicing so a
// single edit on large content stays near-linear.
func replaceOccurrences(content, oldStr, newStr string, replaceAll bool) string {
	if replaceAll {
		return strings.ReplaceAll(content, oldStr, newStr)
	}
	idx := strings.Index(content, oldStr)
	if idx < 0 {
		return content
	}
	var sb strings.Builder
	sb.Grow(len(content) - len(oldStr) + len(newStr))
	sb.WriteString(content[:idx])
	sb.WriteString(newStr)
	sb.WriteString(content[idx+len(oldStr):])
	return sb.String()
}

// insertContent implements the empty-oldString heuristic: fill the first
// empty-braces block if one exists, else append.
func insertContent(content, newStr string) string {
	if idx := strings.Index(content, emptyBracesBlock); idx >= 0 {
		return content[:idx] + "{\n" + newStr + "\n}" + content[idx+len(emptyBracesBlock):]
	}
	return content + newStr
}

// snippet shortens a string for inclusion in error messages.
func snippet(s string) string {
	const max = 80
	s = strings.ReplaceAll(s, "\n", "\\n")
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

package diff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const diffContextLines = 3

// summaryHeadLines is how many leading lines of the new version a synthetic
// summary includes.
const summaryHeadLines = 5

// renderUnified produces a UnifiedDiff for two full text versions.
//
// Cost strategy: exact line diffs are superlinear in input size, so work is
// bounded up front. Below FullDiffThreshold combined bytes the diff is exact.
// Above it, if either side exceeds SummaryLineThreshold lines the result is
// a synthetic summary (counts, delta, head of the new version); otherwise an
// exact diff is computed over a WindowLines prefix of each side and marked
// truncated. Identical inputs always produce byte-identical output.
func (e *Engine) renderUnified(filename, fromLabel, toLabel, oldContent, newContent string) (UnifiedDiff, error) {
	result := UnifiedDiff{
		Filename:   filename,
		OldVersion: oldContent,
		NewVersion: newContent,
	}
	if oldContent == newContent {
		return result, nil
	}

	if len(oldContent)+len(newContent) <= e.limits.FullDiffThreshold {
		text, err := renderExact(fromLabel, toLabel, oldContent, newContent)
		if err != nil {
			return UnifiedDiff{}, err
		}
		result.DiffText = text
		return result, nil
	}

	oldTally := lineTally(oldContent)
	newTally := lineTally(newContent)
	if oldTally > e.limits.SummaryLineThreshold || newTally > e.limits.SummaryLineThreshold {
		result.DiffText = renderSummary(fromLabel, toLabel, oldContent, newContent, oldTally, newTally)
		return result, nil
	}

	window := e.limits.WindowLines
	text, err := renderExactLines(fromLabel, toLabel,
		head(difflib.SplitLines(oldContent), window),
		head(difflib.SplitLines(newContent), window))
	if err != nil {
		return UnifiedDiff{}, err
	}
	// The marker is unconditional: the versions differ, so even when the
	// compared windows are identical the output must not read as "no change".
	text += fmt.Sprintf("[diff truncated: compared only the first %d lines of each version]\n", window)
	result.DiffText = text
	return result, nil
}

func renderExact(fromLabel, toLabel, oldContent, newContent string) (string, error) {
	return renderExactLines(fromLabel, toLabel, difflib.SplitLines(oldContent), difflib.SplitLines(newContent))
}

func renderExactLines(fromLabel, toLabel string, oldLines, newLines []string) (string, error) {
	ud := difflib.UnifiedDiff{
		A:        oldLines,
		B:        newLines,
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  diffContextLines,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("render unified diff: %w", err)
	}
	return text, nil
}

// renderSummary emits a deterministic stand-in for inputs too large to diff
// exactly. A caller that needs the real hunks for a file this size should
// fetch the content directly instead.
func renderSummary(fromLabel, toLabel, oldContent, newContent string, oldTally, newTally int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n", fromLabel)
	fmt.Fprintf(&sb, "+++ %s\n", toLabel)
	sb.WriteString("@@ diff too large to render @@\n")
	fmt.Fprintf(&sb, " old: %d lines, %d bytes\n", oldTally, len(oldContent))
	fmt.Fprintf(&sb, " new: %d lines, %d bytes\n", newTally, len(newContent))
	fmt.Fprintf(&sb, " delta: %+d lines\n", newTally-oldTally)
	if newContent != "" {
		lines := strings.SplitN(newContent, "\n", summaryHeadLines+1)
		if lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		sb.WriteString(" new version begins:\n")
		for _, line := range head(lines, summaryHeadLines) {
			sb.WriteString("+" + line + "\n")
		}
	}
	return sb.String()
}

func head(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[:n]
}

// countLines returns the number of newline-separated lines, 0 for empty
// content: "a\n" is two lines (the second empty). This is the reader-facing
// count ReadDiff reports. The renderer sizes its work with lineTally instead,
// whose trailing-newline handling differs; the two are not interchangeable.
func countLines(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}

// lineTally counts lines the way wc -l plus a trailing partial does: a
// trailing newline does not open a phantom extra line, so "a\n" is one line.
// Used for the renderer's size decisions and summary output, where the count
// must match the number of diffable lines. ReadDiff's newline-separated
// semantics live in countLines; keep the two distinct.
func lineTally(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}

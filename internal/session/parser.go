// Package session parses per-session event logs into operation records the
// diff handlers consume. Two on-disk formats exist: the current one is JSONL
// (one event per line); the legacy one is a single JSON document with an
// entries array.
package session

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kvit-s/tracediff/internal/diff"
)

// maxLineBytes is the scanner ceiling for a single JSONL event.
const maxLineBytes = 10 * 1024 * 1024

// OperationRecord is one recorded agent action, the shape the protocol layer
// lists and the diff generators are invoked for.
type OperationRecord struct {
	ID         string          `json:"id"`
	Timestamp  time.Time       `json:"timestamp"`
	Tool       string          `json:"tool"`
	FilePath   string          `json:"file_path,omitempty"`
	Summary    string          `json:"summary"`
	ChangeType diff.ChangeType `json:"change_type"`
}

// event is one line of the current JSONL format.
type event struct {
	ID    string          `json:"id"`
	TS    time.Time       `json:"ts"`
	Type  string          `json:"type"`
	Tool  string          `json:"tool"`
	Input json.RawMessage `json:"input"`
}

// legacyLog is the older single-document format.
type legacyLog struct {
	Version int           `json:"version"`
	Entries []legacyEntry `json:"entries"`
}

type legacyEntry struct {
	Timestamp  time.Time       `json:"timestamp"`
	ToolName   string          `json:"tool_name"`
	Parameters json.RawMessage `json:"parameters"`
}

// toolInput is the subset of tool parameters needed for record metadata.
type toolInput struct {
	FilePath string `json:"file_path"`
	Path     string `json:"path"`
	Command  string `json:"command"`
}

// Parse reads a session log in either format and returns its operation
// records in log order. The format is sniffed from the first non-blank
// content: a legacy log is a single object with an entries array, anything
// else is treated as JSONL.
func Parse(r io.Reader) ([]OperationRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if isLegacy(trimmed) {
		return parseLegacy(trimmed)
	}
	return parseJSONL(bytes.NewReader(data))
}

// ParseFile parses the log at path, surfacing I/O problems as the engine's
// filesystem error kind so they cross the protocol boundary untouched.
func ParseFile(path string) ([]OperationRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, diff.FileSystemErrorf(path, err, "open session log: %v", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, diff.FileSystemErrorf(path, err, "parse session log: %v", err)
	}
	return records, nil
}

// isLegacy sniffs for the single-document format. A legacy log is one JSON
// object with an entries array, usually pretty-printed across many lines, so
// the whole input must unmarshal as a single document. JSONL never does: its
// second line breaks the document parse, and a lone JSONL event has no
// top-level entries key.
func isLegacy(trimmed []byte) bool {
	if trimmed[0] != '{' {
		return false
	}
	var probe struct {
		Entries json.RawMessage `json:"entries"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return false
	}
	return probe.Entries != nil
}

func parseJSONL(r io.Reader) ([]OperationRecord, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineBytes)

	var records []OperationRecord
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var ev event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if ev.Type != "tool_use" {
			continue
		}

		rec, err := recordFromEvent(ev)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan log: %w", err)
	}
	return records, nil
}

func parseLegacy(data []byte) ([]OperationRecord, error) {
	var doc legacyLog
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse legacy log: %w", err)
	}

	records := make([]OperationRecord, 0, len(doc.Entries))
	for i, entry := range doc.Entries {
		if entry.ToolName == "" {
			return nil, fmt.Errorf("entry %d: missing tool_name", i+1)
		}
		var input toolInput
		if len(entry.Parameters) > 0 {
			if err := json.Unmarshal(entry.Parameters, &input); err != nil {
				return nil, fmt.Errorf("entry %d: %w", i+1, err)
			}
		}
		records = append(records, OperationRecord{
			// Legacy entries carry no id; generate a stable-enough one.
			ID:         uuid.NewString(),
			Timestamp:  entry.Timestamp,
			Tool:       entry.ToolName,
			FilePath:   input.filePath(),
			Summary:    summarize(entry.ToolName, input),
			ChangeType: changeTypeFor(entry.ToolName),
		})
	}
	return records, nil
}

func recordFromEvent(ev event) (OperationRecord, error) {
	if ev.Tool == "" {
		return OperationRecord{}, fmt.Errorf("tool_use event missing tool")
	}
	var input toolInput
	if len(ev.Input) > 0 {
		if err := json.Unmarshal(ev.Input, &input); err != nil {
			return OperationRecord{}, err
		}
	}
	id := ev.ID
	if id == "" {
		id = uuid.NewString()
	}
	return OperationRecord{
		ID:         id,
		Timestamp:  ev.TS,
		Tool:       ev.Tool,
		FilePath:   input.filePath(),
		Summary:    summarize(ev.Tool, input),
		ChangeType: changeTypeFor(ev.Tool),
	}, nil
}

func (in toolInput) filePath() string {
	if in.FilePath != "" {
		return in.FilePath
	}
	return in.Path
}

func summarize(tool string, input toolInput) string {
	switch tool {
	case "Bash":
		cmd := input.Command
		if len(cmd) > 80 {
			cmd = cmd[:80] + "..."
		}
		return fmt.Sprintf("%s: %s", tool, cmd)
	default:
		if p := input.filePath(); p != "" {
			return fmt.Sprintf("%s %s", tool, p)
		}
		return tool
	}
}

func changeTypeFor(tool string) diff.ChangeType {
	switch tool {
	case "Read", "Glob", "Grep":
		return diff.ChangeRead
	case "Write":
		return diff.ChangeCreate
	default:
		return diff.ChangeUpdate
	}
}

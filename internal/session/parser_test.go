package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kvit-s/tracediff/internal/diff"
)

const jsonlLog = `{"id":"op-1","ts":"2026-08-20T10:00:00Z","type":"tool_use","tool":"Read","input":{"file_path":"main.go"}}
{"id":"op-2","ts":"2026-08-20T10:00:05Z","type":"assistant_message"}

{"id":"op-3","ts":"2026-08-20T10:00:10Z","type":"tool_use","tool":"Edit","input":{"file_path":"main.go"}}
{"ts":"2026-08-20T10:00:20Z","type":"tool_use","tool":"Bash","input":{"command":"go build ./..."}}
`

func TestParse_JSONL(t *testing.T) {
	records, err := Parse(strings.NewReader(jsonlLog))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3 (non-tool events skipped)", len(records))
	}

	if records[0].ID != "op-1" || records[0].Tool != "Read" {
		t.Errorf("first record = %+v", records[0])
	}
	if records[0].ChangeType != diff.ChangeRead {
		t.Errorf("Read change type = %q, want read", records[0].ChangeType)
	}
	if records[1].Tool != "Edit" || records[1].FilePath != "main.go" {
		t.Errorf("second record = %+v", records[1])
	}
	if records[1].ChangeType != diff.ChangeUpdate {
		t.Errorf("Edit change type = %q, want update", records[1].ChangeType)
	}

	// Missing id gets a generated one.
	if records[2].ID == "" {
		t.Error("record without id should get a generated one")
	}
	if !strings.Contains(records[2].Summary, "go build") {
		t.Errorf("bash summary = %q, want the command", records[2].Summary)
	}
}

func TestParse_Legacy(t *testing.T) {
	legacy := `{
		"version": 1,
		"entries": [
			{"timestamp":"2026-08-19T09:00:00Z","tool_name":"Write","parameters":{"path":"notes.md"}},
			{"timestamp":"2026-08-19T09:01:00Z","tool_name":"Read","parameters":{"path":"notes.md"}}
		]
	}`

	records, err := Parse(strings.NewReader(legacy))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Tool != "Write" || records[0].FilePath != "notes.md" {
		t.Errorf("first record = %+v", records[0])
	}
	if records[0].ChangeType != diff.ChangeCreate {
		t.Errorf("Write change type = %q, want create", records[0].ChangeType)
	}
	if records[0].ID == "" || records[1].ID == "" {
		t.Error("legacy records should get generated ids")
	}
	if records[0].ID == records[1].ID {
		t.Error("generated ids should be distinct")
	}
}

func TestParse_FormatSniffing(t *testing.T) {
	t.Run("compact legacy document", func(t *testing.T) {
		compact := `{"version":1,"entries":[{"timestamp":"2026-08-19T09:00:00Z","tool_name":"Edit","parameters":{"file_path":"a.go"}}]}`
		records, err := Parse(strings.NewReader(compact))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 1 || records[0].Tool != "Edit" {
			t.Errorf("records = %+v", records)
		}
	})

	t.Run("single jsonl event stays jsonl", func(t *testing.T) {
		// Parses as a whole document too, but has no top-level entries key.
		line := `{"id":"op-1","ts":"2026-08-20T10:00:00Z","type":"tool_use","tool":"Read","input":{"file_path":"main.go"}}`
		records, err := Parse(strings.NewReader(line))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 1 || records[0].ID != "op-1" {
			t.Errorf("records = %+v", records)
		}
	})
}

func TestParse_EmptyLog(t *testing.T) {
	records, err := Parse(strings.NewReader("\n\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0", len(records))
	}
}

func TestParse_MalformedLineNamesLineNumber(t *testing.T) {
	bad := `{"id":"op-1","ts":"2026-08-20T10:00:00Z","type":"tool_use","tool":"Read","input":{}}
not json at all
`
	_, err := Parse(strings.NewReader(bad))
	if err == nil {
		t.Fatal("expected error for malformed line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error = %v, want it to name line 2", err)
	}
}

func TestParse_ToolUseMissingTool(t *testing.T) {
	bad := `{"id":"op-1","ts":"2026-08-20T10:00:00Z","type":"tool_use","input":{}}`
	_, err := Parse(strings.NewReader(bad))
	if err == nil {
		t.Fatal("expected error for tool_use without tool")
	}
}

func TestParseFile(t *testing.T) {
	t.Run("existing file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "session.jsonl")
		if err := os.WriteFile(path, []byte(jsonlLog), 0644); err != nil {
			t.Fatal(err)
		}

		records, err := ParseFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 3 {
			t.Errorf("records = %d, want 3", len(records))
		}
	})

	t.Run("missing file surfaces filesystem error", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(t.TempDir(), "absent.jsonl"))
		if err == nil {
			t.Fatal("expected error")
		}
		if _, ok := err.(*diff.FileSystemError); !ok {
			t.Fatalf("error = %T, want *diff.FileSystemError", err)
		}
	})
}

func TestSummarize_TruncatesLongCommands(t *testing.T) {
	long := strings.Repeat("x", 200)
	got := summarize("Bash", toolInput{Command: long})
	if len(got) > 100 {
		t.Errorf("summary too long: %d bytes", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("summary = %q, want truncation marker", got)
	}
}

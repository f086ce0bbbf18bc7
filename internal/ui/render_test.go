package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/kvit-s/tracediff/internal/session"
)

func init() {
	color.NoColor = true
}

func TestWriteDiff(t *testing.T) {
	diffText := "--- a.txt (original)\n+++ a.txt (modified)\n@@ -1 +1 @@\n-old\n+new\n"
	var buf strings.Builder
	WriteDiff(&buf, diffText)
	if buf.String() != diffText {
		t.Errorf("colorless output should pass through unchanged:\n%q", buf.String())
	}
}

func TestWriteDiff_EmptyWritesNothing(t *testing.T) {
	var buf strings.Builder
	WriteDiff(&buf, "")
	if buf.Len() != 0 {
		t.Errorf("empty diff produced output: %q", buf.String())
	}
}

func TestWriteOperations(t *testing.T) {
	records := []session.OperationRecord{
		{
			ID:         "op-1",
			Timestamp:  time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
			Tool:       "Edit",
			FilePath:   "main.go",
			Summary:    "main.go",
			ChangeType: "update",
		},
	}
	var buf strings.Builder
	WriteOperations(&buf, "sess-1", records)
	out := buf.String()
	for _, want := range []string{"sess-1", "Edit", "update", "main.go", "TOOL"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteOperations_Empty(t *testing.T) {
	var buf strings.Builder
	WriteOperations(&buf, "sess-1", nil)
	if !strings.Contains(buf.String(), "no operations recorded") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteSessionList(t *testing.T) {
	var buf strings.Builder
	WriteSessionList(&buf, []string{"b", "a"})
	out := buf.String()
	if !strings.Contains(out, " b\n a\n") {
		t.Errorf("ids should keep caller order:\n%s", out)
	}

	buf.Reset()
	WriteSessionList(&buf, nil)
	if !strings.Contains(buf.String(), "No sessions found.") {
		t.Errorf("output = %q", buf.String())
	}
}

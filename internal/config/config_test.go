package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Engine.MaxEdits != 1000 {
		t.Errorf("MaxEdits = %d, want 1000", cfg.Engine.MaxEdits)
	}
	if cfg.Engine.FullDiffThresholdKB != 1024 {
		t.Errorf("FullDiffThresholdKB = %d, want 1024", cfg.Engine.FullDiffThresholdKB)
	}
	if cfg.Sessions.Root == "" {
		t.Error("Sessions.Root should have a default")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Engine.MaxEdits != 1000 {
		t.Errorf("MaxEdits = %d, want default", cfg.Engine.MaxEdits)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
engine:
  max_edits: 50
  summary_line_threshold: 200
sessions:
  root: /var/log/traces
  cache_ttl_secs: 60
log:
  path: /tmp/tracediff.log
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Engine.MaxEdits != 50 {
		t.Errorf("MaxEdits = %d, want 50", cfg.Engine.MaxEdits)
	}
	if cfg.Engine.MaxContentKB != 10*1024 {
		t.Errorf("MaxContentKB = %d, want default preserved", cfg.Engine.MaxContentKB)
	}
	if cfg.Sessions.Root != "/var/log/traces" {
		t.Errorf("Sessions.Root = %q", cfg.Sessions.Root)
	}
	if cfg.Log.Path != "/tmp/tracediff.log" {
		t.Errorf("Log.Path = %q", cfg.Log.Path)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("engine:\n  max_edits: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for max_edits 0")
	}
}

func TestEngineLimits(t *testing.T) {
	cfg := Default()
	limits := cfg.EngineLimits()
	if limits.MaxContentBytes != 10*1024*1024 {
		t.Errorf("MaxContentBytes = %d", limits.MaxContentBytes)
	}
	if limits.FullDiffThreshold != 1024*1024 {
		t.Errorf("FullDiffThreshold = %d", limits.FullDiffThreshold)
	}
}

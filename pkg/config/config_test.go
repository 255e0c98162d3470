package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dd0wney/cluso-graphview/pkg/layout"
	"github.com/dd0wney/cluso-graphview/pkg/logging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "explorer.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Layout.Algorithm != "hierarchical" {
		t.Errorf("Default algorithm = %q, want hierarchical", cfg.Layout.Algorithm)
	}
	if cfg.Search.Limit != 15 {
		t.Errorf("Default search limit = %d, want 15", cfg.Search.Limit)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
layout:
  algorithm: force
  iterations: 80
  seed: 42
search:
  limit: 5
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Layout.Algorithm != "force" {
		t.Errorf("Algorithm = %q, want force", cfg.Layout.Algorithm)
	}
	if cfg.Layout.Iterations != 80 {
		t.Errorf("Iterations = %d, want 80", cfg.Layout.Iterations)
	}
	if cfg.Search.Limit != 5 {
		t.Errorf("Search limit = %d, want 5", cfg.Search.Limit)
	}
	if cfg.LogLevel() != logging.DebugLevel {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel())
	}
}

func TestLoadKeepsDefaultsForUnsetFields(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: warn\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Layout.Algorithm != "hierarchical" {
		t.Errorf("Unset algorithm should keep default, got %q", cfg.Layout.Algorithm)
	}
	if cfg.Search.Limit != 15 {
		t.Errorf("Unset search limit should keep default, got %d", cfg.Search.Limit)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad algorithm", "layout:\n  algorithm: radial\n"},
		{"bad direction", "layout:\n  direction: sideways\n"},
		{"bad level", "logging:\n  level: loud\n"},
		{"negative limit", "search:\n  limit: -1\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			if _, err := Load(path); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := Load("../../explorer.yaml")
	if err != nil {
		t.Fatalf("Shipped config must load: %v", err)
	}
	if _, err := cfg.BuildLayout(); err != nil {
		t.Errorf("Shipped config must build a layout: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestBuildLayout(t *testing.T) {
	cases := []struct {
		algorithm string
	}{
		{"hierarchical"},
		{"force"},
		{"circular"},
		{""},
	}
	for _, tc := range cases {
		cfg := Default()
		cfg.Layout.Algorithm = tc.algorithm
		l, err := cfg.BuildLayout()
		if err != nil {
			t.Errorf("BuildLayout(%q) failed: %v", tc.algorithm, err)
		}
		if l == nil {
			t.Errorf("BuildLayout(%q) returned nil", tc.algorithm)
		}
	}

	cfg := Default()
	cfg.Layout.Algorithm = "radial"
	if _, err := cfg.BuildLayout(); err == nil {
		t.Error("BuildLayout should reject unknown algorithms")
	}
}

func TestBuildLayoutDirection(t *testing.T) {
	cfg := Default()
	cfg.Layout.Direction = "down"

	l, err := cfg.BuildLayout()
	if err != nil {
		t.Fatalf("BuildLayout failed: %v", err)
	}
	if _, ok := l.(*layout.HierarchicalLayout); !ok {
		t.Fatalf("Expected hierarchical layout, got %T", l)
	}
}

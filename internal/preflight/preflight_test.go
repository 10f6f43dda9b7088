package preflight

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"texmanifest/internal/config"
	"texmanifest/internal/services"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckBinary(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	if err := os.WriteFile(present, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	if r := CheckBinary("Present", present); !r.Passed {
		t.Fatalf("expected present binary to pass: %s", r.Detail)
	}
	if r := CheckBinary("Missing", "clearly-not-present-binary"); r.Passed {
		t.Fatal("expected missing binary to fail")
	}
	if r := CheckBinary("Empty", " "); r.Passed || r.Detail != "command not configured" {
		t.Fatalf("unexpected result for empty command: %#v", r)
	}
}

func TestRunAllAndErr(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.ExportDir = filepath.Join(t.TempDir(), "missing")

	results := RunAll(&cfg, "clearly-not-present-binary")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	err := Err(results)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Export directory") || !strings.Contains(err.Error(), "Converter") {
		t.Fatalf("error should name both failures: %v", err)
	}

	if err := Err([]Result{{Name: "ok", Passed: true}}); err != nil {
		t.Fatalf("expected nil for passing results, got %v", err)
	}
}

package fshost_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"texmanifest/internal/host/fshost"
)

const udimDocument = `
scene = "robot"
host_version = "8.3.0"
source_dir = "src"

[[materials]]
name = "1001"
resolution = [2048, 2048]
channels = ["basecolor", "normal", "height"]
uv_tiles = true

[[materials]]
name = "1002"
resolution = [2048, 2048]
channels = ["basecolor", "height"]
uv_tiles = true
`

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "document.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		t.Fatalf("mkdir src: %v", err)
	}
	return path
}

func writeSource(t *testing.T, docPath, name, content string) {
	t.Helper()
	path := filepath.Join(filepath.Dir(docPath), "src", name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write source %s: %v", name, err)
	}
}

func TestLoadParsesDocument(t *testing.T) {
	h, err := fshost.Load(writeDocument(t, udimDocument))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	doc := h.Document()
	if doc.Scene != "robot" || doc.HostVersion != "8.3.0" {
		t.Fatalf("unexpected document header: %+v", doc)
	}
	if len(doc.Materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(doc.Materials))
	}
	first := doc.Materials[0]
	if first.Name != "1001" || first.Resolution.Width != 2048 || len(first.Channels) != 3 {
		t.Fatalf("unexpected first material: %+v", first)
	}
	if !h.HasUVTiles("1001") || h.HasUVTiles("missing") {
		t.Fatal("unexpected uv tile flags")
	}
}

func TestLoadRejectsDuplicates(t *testing.T) {
	doc := `
[[materials]]
name = "wood"
[[materials]]
name = "wood"
`
	if _, err := fshost.Load(writeDocument(t, doc)); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestLoadRejectsBadResolution(t *testing.T) {
	doc := `
[[materials]]
name = "wood"
resolution = [1024]
`
	if _, err := fshost.Load(writeDocument(t, doc)); err == nil {
		t.Fatal("expected resolution error")
	}
}

func TestExportCopiesSource(t *testing.T) {
	docPath := writeDocument(t, udimDocument)
	writeSource(t, docPath, "1001_basecolor.png", "albedo")
	h, err := fshost.Load(docPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	out := filepath.Join(t.TempDir(), "RenderMan", "basecolor_srgb_texture.1001.png")
	if err := h.Export(context.Background(), "1001", "basecolor", out); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(got) != "albedo" {
		t.Fatalf("unexpected export content %q", got)
	}

	if err := h.Export(context.Background(), "1001", "roughness", out); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestConvertExportFallsBackToHeight(t *testing.T) {
	docPath := writeDocument(t, udimDocument)
	writeSource(t, docPath, "1002_height.png", "bumps")
	h, err := fshost.Load(docPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	out := filepath.Join(t.TempDir(), "normal_raw.1002.png")
	if err := h.ConvertExport(context.Background(), "1002", "normal_from_height", out); err != nil {
		t.Fatalf("ConvertExport returned error: %v", err)
	}
	got, _ := os.ReadFile(out)
	if string(got) != "bumps" {
		t.Fatalf("expected height fallback, got %q", got)
	}

	if err := h.ConvertExport(context.Background(), "1001", "normal_from_height", out); err == nil {
		t.Fatal("expected error when no normal or height source exists")
	}
}

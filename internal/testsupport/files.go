package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	data := make([]byte, size)
	for i := range data {
		data[i] = 0x42
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// Material describes one texture set of a fixture document.
type Material struct {
	Name     string
	Channels []string
	UVTiles  bool
}

// WriteDocument writes a directory-backed host document under dir with a
// source image for every (material, channel) pair and returns the
// document.toml path.
func WriteDocument(t testing.TB, dir, scene string, materials ...Material) string {
	t.Helper()

	sources := filepath.Join(dir, "sources")
	var b strings.Builder
	b.WriteString("scene = \"" + scene + "\"\n")
	b.WriteString("host_version = \"10.1.0\"\n")
	b.WriteString("source_dir = \"sources\"\n")
	for _, mat := range materials {
		b.WriteString("\n[[materials]]\n")
		b.WriteString("name = \"" + mat.Name + "\"\n")
		b.WriteString("resolution = [2048, 2048]\n")
		quoted := make([]string, 0, len(mat.Channels))
		for _, ch := range mat.Channels {
			quoted = append(quoted, "\""+ch+"\"")
			WriteFile(t, filepath.Join(sources, mat.Name+"_"+ch+".png"), 16)
		}
		b.WriteString("channels = [" + strings.Join(quoted, ", ") + "]\n")
		if mat.UVTiles {
			b.WriteString("uv_tiles = true\n")
		}
	}

	path := filepath.Join(dir, "document.toml")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}
	return path
}

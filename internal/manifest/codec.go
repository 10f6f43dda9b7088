package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"texmanifest/internal/fileutil"
	"texmanifest/internal/pathnorm"
	"texmanifest/internal/services"
)

const indent = "    "

// Marshal encodes m in the converter's manifest format. Paths are written in
// manifest form; channel keys are sorted.
func Marshal(m Manifest) ([]byte, error) {
	out := m
	out.RmanTree = pathnorm.ManifestPath(m.RmanTree)
	out.RmsTree = pathnorm.ManifestPath(m.RmsTree)
	out.OCIO = pathnorm.ManifestPath(m.OCIO)
	out.SaveTo = pathnorm.ManifestPath(m.SaveTo)
	out.Document = make([]TextureSet, 0, len(m.Document))
	for _, ts := range m.Document {
		channels := make(map[string][]string, len(ts.Channels))
		for name, paths := range ts.Channels {
			converted := make([]string, len(paths))
			for i, p := range paths {
				converted[i] = pathnorm.ManifestPath(p)
			}
			channels[name] = converted
		}
		ts.Channels = channels
		out.Document = append(out.Document, ts)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a manifest.
func Unmarshal(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Document == nil {
		m.Document = []TextureSet{}
	}
	return m, nil
}

// Read loads a manifest from disk.
func Read(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	return Unmarshal(data)
}

// Write replaces the manifest at path in full.
func Write(path string, m Manifest) error {
	data, err := Marshal(m)
	if err != nil {
		return services.Wrap(services.ErrManifestWrite, "write", "encode", "manifest encoding failed", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return services.Wrap(services.ErrManifestWrite, "write", path, "manifest write failed", err)
	}
	return nil
}

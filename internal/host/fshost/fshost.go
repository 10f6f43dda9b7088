// Package fshost is a directory-backed host: a TOML document description
// lists the materials and channels, and exports copy pre-rendered source
// images into place. It lets the export pipeline run outside the authoring
// application, for batch jobs and tests.
package fshost

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"texmanifest/internal/fileutil"
	"texmanifest/internal/host"
)

type documentFile struct {
	Scene       string         `toml:"scene"`
	HostVersion string         `toml:"host_version"`
	SourceDir   string         `toml:"source_dir"`
	SourceExt   string         `toml:"source_ext"`
	Materials   []materialFile `toml:"materials"`
}

type materialFile struct {
	Name       string   `toml:"name"`
	Resolution []int    `toml:"resolution"`
	Channels   []string `toml:"channels"`
	UVTiles    bool     `toml:"uv_tiles"`
}

// Host serves a document loaded from disk.
type Host struct {
	doc       host.Document
	sourceDir string
	sourceExt string
	uvTiles   map[string]bool
}

// Load parses a document description. A relative source_dir resolves against
// the description's directory.
func Load(path string) (*Host, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	var file documentFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	sourceDir := strings.TrimSpace(file.SourceDir)
	if sourceDir == "" {
		sourceDir = "."
	}
	if !filepath.IsAbs(sourceDir) {
		sourceDir = filepath.Join(filepath.Dir(path), sourceDir)
	}
	ext := strings.TrimSpace(file.SourceExt)
	if ext == "" {
		ext = ".png"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	h := &Host{
		doc: host.Document{
			Scene:       strings.TrimSpace(file.Scene),
			HostVersion: strings.TrimSpace(file.HostVersion),
		},
		sourceDir: sourceDir,
		sourceExt: ext,
		uvTiles:   make(map[string]bool, len(file.Materials)),
	}
	seen := make(map[string]struct{}, len(file.Materials))
	for i, m := range file.Materials {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			return nil, fmt.Errorf("materials[%d]: name is required", i)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("materials[%d]: duplicate material %q", i, name)
		}
		seen[name] = struct{}{}
		var res host.Resolution
		switch len(m.Resolution) {
		case 0:
		case 2:
			res = host.Resolution{Width: m.Resolution[0], Height: m.Resolution[1]}
		default:
			return nil, fmt.Errorf("materials[%d]: resolution must be [width, height]", i)
		}
		h.doc.Materials = append(h.doc.Materials, host.Material{
			Name:       name,
			Resolution: res,
			Channels:   append([]string(nil), m.Channels...),
		})
		h.uvTiles[name] = m.UVTiles
	}
	return h, nil
}

// Document returns the loaded document model.
func (h *Host) Document() host.Document {
	return h.doc
}

// HasUVTiles reports the uv_tiles flag of a material.
func (h *Host) HasUVTiles(material string) bool {
	return h.uvTiles[material]
}

// Export copies <source_dir>/<material>_<channel><ext> to outputPath.
func (h *Host) Export(ctx context.Context, material, channel, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src := h.sourcePath(material, channel)
	if err := fileutil.CopyFile(src, outputPath); err != nil {
		return fmt.Errorf("export %s/%s: %w", material, channel, err)
	}
	return nil
}

// ConvertExport stands in for the host's combined normal-map conversion: the
// material's normal source is used when present, its height source otherwise.
func (h *Host) ConvertExport(ctx context.Context, material, profile, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, channel := range []string{"normal", "height"} {
		src := h.sourcePath(material, channel)
		if _, err := os.Stat(src); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("convert %s (%s): %w", material, profile, err)
		}
		if err := fileutil.CopyFile(src, outputPath); err != nil {
			return fmt.Errorf("convert %s (%s): %w", material, profile, err)
		}
		return nil
	}
	return fmt.Errorf("convert %s (%s): no normal or height source in %s", material, profile, h.sourceDir)
}

func (h *Host) sourcePath(material, channel string) string {
	return filepath.Join(h.sourceDir, material+"_"+channel+h.sourceExt)
}

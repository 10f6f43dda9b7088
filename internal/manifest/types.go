package manifest

import (
	"sort"

	"texmanifest/internal/host"
)

// Resolution is serialized as a [width, height] pair.
type Resolution = host.Resolution

// TextureSet is one entry of the manifest document: a material, or the whole
// UDIM group.
type TextureSet struct {
	Name       string              `json:"textureSet"`
	Resolution Resolution          `json:"resolution"`
	Channels   map[string][]string `json:"channels"`
}

// ChannelNames returns the channel identifiers of the set in sorted order.
func (ts TextureSet) ChannelNames() []string {
	names := make([]string, 0, len(ts.Channels))
	for name := range ts.Channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (ts *TextureSet) add(channel, path string) {
	if ts.Channels == nil {
		ts.Channels = make(map[string][]string)
	}
	ts.Channels[channel] = append(ts.Channels[channel], path)
}

// Manifest is the root object written for the converter.
type Manifest struct {
	Scene       string       `json:"scene"`
	HostVersion string       `json:"sp_version"`
	RmanTree    string       `json:"RMANTREE"`
	RmsTree     string       `json:"RMSTREE"`
	OCIO        string       `json:"OCIO"`
	Bxdf        string       `json:"bxdf"`
	UDIM        bool         `json:"udim"`
	SaveTo      string       `json:"saveTo"`
	Document    []TextureSet `json:"document"`
}

// Files returns every exported path in document order. Channels of a set are
// visited in sorted order.
func (m Manifest) Files() []string {
	var files []string
	for _, ts := range m.Document {
		for _, name := range ts.ChannelNames() {
			files = append(files, ts.Channels[name]...)
		}
	}
	return files
}

// Summary counts the contents of a manifest.
type Summary struct {
	TextureSets int
	Channels    int
	Files       int
}

// Summary returns counts for logging and CLI output. Channels counts
// distinct (texture set, channel) pairs.
func (m Manifest) Summary() Summary {
	s := Summary{TextureSets: len(m.Document)}
	for _, ts := range m.Document {
		s.Channels += len(ts.Channels)
		for _, paths := range ts.Channels {
			s.Files += len(paths)
		}
	}
	return s
}

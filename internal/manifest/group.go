package manifest

import (
	"texmanifest/internal/host"
	"texmanifest/internal/udim"
)

// group accumulates texture sets for one classification of the document.
type group interface {
	// open returns the texture set that receives the material's channels.
	open(mat host.Material) *TextureSet
	sets() []TextureSet
}

// udimGroup folds every tile into a single representative entry. The first
// tile supplies the resolution.
type udimGroup struct {
	entry *TextureSet
}

func (g *udimGroup) open(mat host.Material) *TextureSet {
	if g.entry == nil {
		g.entry = &TextureSet{Name: udim.Sentinel, Resolution: mat.Resolution}
	}
	return g.entry
}

func (g *udimGroup) sets() []TextureSet {
	if g.entry == nil {
		return []TextureSet{}
	}
	return []TextureSet{finalize(*g.entry)}
}

// perMaterialGroup keeps one entry per material in document order.
type perMaterialGroup struct {
	entries []*TextureSet
}

func (g *perMaterialGroup) open(mat host.Material) *TextureSet {
	ts := &TextureSet{Name: mat.Name, Resolution: mat.Resolution}
	g.entries = append(g.entries, ts)
	return ts
}

func (g *perMaterialGroup) sets() []TextureSet {
	out := make([]TextureSet, 0, len(g.entries))
	for _, ts := range g.entries {
		out = append(out, finalize(*ts))
	}
	return out
}

func newGroup(isUDIM bool) group {
	if isUDIM {
		return &udimGroup{}
	}
	return &perMaterialGroup{}
}

// finalize gives a set with no included channels an empty object rather
// than null in the manifest.
func finalize(ts TextureSet) TextureSet {
	if ts.Channels == nil {
		ts.Channels = map[string][]string{}
	}
	return ts
}

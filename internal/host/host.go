// Package host defines the collaborator contracts the manifest builder needs
// from the texture-authoring application: document enumeration, channel
// export and the UV-tile query.
package host

import (
	"context"
	"encoding/json"
	"fmt"
)

// Resolution is the export resolution reported for a texture set. It is
// serialized as a [width, height] pair.
type Resolution struct {
	Width  int
	Height int
}

// MarshalJSON encodes the resolution as [width, height].
func (r Resolution) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{r.Width, r.Height})
}

// UnmarshalJSON decodes a [width, height] pair.
func (r *Resolution) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("resolution: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("resolution: expected [width, height], got %d values", len(pair))
	}
	r.Width, r.Height = pair[0], pair[1]
	return nil
}

func (r Resolution) String() string {
	return fmt.Sprintf("%d x %d", r.Width, r.Height)
}

// Material is one texture set of the document with its channels in stack order.
type Material struct {
	Name       string
	Resolution Resolution
	Channels   []string
}

// Document is the host's document model in document order.
type Document struct {
	Scene       string
	HostVersion string
	Materials   []Material
}

// MaterialNames returns the material names in document order.
func (d Document) MaterialNames() []string {
	names := make([]string, 0, len(d.Materials))
	for _, m := range d.Materials {
		names = append(names, m.Name)
	}
	return names
}

// Exporter writes channel images on behalf of the host.
type Exporter interface {
	// Export writes one channel of a material to outputPath.
	Export(ctx context.Context, material, channel, outputPath string) error
	// ConvertExport writes a material through a named conversion profile,
	// used for normal maps that combine mesh, height and normal inputs.
	ConvertExport(ctx context.Context, material, profile, outputPath string) error
}

// TileInspector reports whether a texture set uses per-tile UV addressing.
type TileInspector interface {
	HasUVTiles(material string) bool
}

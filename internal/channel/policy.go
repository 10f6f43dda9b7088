package channel

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Well-known channel identifiers.
const (
	BaseColor = "basecolor"
	Diffuse   = "diffuse"
	Emissive  = "emissive"
	Specular  = "specular"
	Normal    = "normal"
	Height    = "height"
	Roughness = "roughness"
	Metallic  = "metallic"
	Opacity   = "opacity"
)

// Colorspace classifies how channel values are interpreted downstream.
type Colorspace int

const (
	// Linear values are data and are never colour-managed.
	Linear Colorspace = iota
	// Managed values are perceptual colour and go through colour management.
	Managed
)

// Token returns the tag written into file names and read by the converter.
func (c Colorspace) Token() string {
	if c == Managed {
		return "srgb_texture"
	}
	return "raw"
}

func (c Colorspace) String() string {
	if c == Managed {
		return "managed"
	}
	return "linear"
}

// Template selects the file naming scheme for an exported channel.
type Template int

const (
	// MaterialTemplate names files after the material: {material}_{channel}_{colorspace}{ext}.
	MaterialTemplate Template = iota
	// TileTemplate names files per tile: {channel}_{colorspace}.{udim}{ext}.
	TileTemplate
)

// Pattern returns the literal template string.
func (t Template) Pattern() string {
	if t == TileTemplate {
		return "{channel}_{colorspace}.{udim}{ext}"
	}
	return "{material}_{channel}_{colorspace}{ext}"
}

func (t Template) String() string {
	if t == TileTemplate {
		return "tile"
	}
	return "material"
}

// Decision is the outcome of applying the policy to one channel.
type Decision struct {
	Channel    string
	Included   bool
	Colorspace Colorspace
	Template   Template
	// Converted marks channels exported through the host's combined
	// conversion instead of a plain channel export.
	Converted bool
}

var managed = map[string]struct{}{
	BaseColor: {},
	Diffuse:   {},
	Emissive:  {},
	Specular:  {},
}

// Decide applies the export policy to a channel identifier. Identifiers are
// compared exactly. Unknown channels are included and linear.
func Decide(channel string, tiled bool) Decision {
	d := Decision{
		Channel:    channel,
		Included:   channel != Height,
		Colorspace: Linear,
		Template:   MaterialTemplate,
		Converted:  channel == Normal,
	}
	if _, ok := managed[channel]; ok {
		d.Colorspace = Managed
	}
	if tiled {
		d.Template = TileTemplate
	}
	return d
}

// FileName renders the decision's template for a material. For tile
// templates the material name is the tile index.
func (d Decision) FileName(material, ext string) string {
	r := strings.NewReplacer(
		"{material}", component(material),
		"{udim}", component(material),
		"{channel}", component(d.Channel),
		"{colorspace}", d.Colorspace.Token(),
		"{ext}", normalizeExt(ext),
	)
	return r.Replace(d.Template.Pattern())
}

// Known returns the built-in channel identifiers in display order.
func Known() []string {
	return []string{BaseColor, Diffuse, Emissive, Specular, Metallic, Roughness, Opacity, Normal, Height}
}

var unsafeChars = strings.NewReplacer("/", "-", `\`, "-", ":", "-", "*", "-", "?", "", "\"", "", "<", "", ">", "", "|", "")

// component NFC-normalizes a name and strips characters that would let it
// escape the export directory or break on Windows file systems.
func component(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	return unsafeChars.Replace(name)
}

func normalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return strings.ToLower(ext)
}

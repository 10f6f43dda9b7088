package manifest

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"

	"texmanifest/internal/channel"
	"texmanifest/internal/host"
	"texmanifest/internal/logging"
	"texmanifest/internal/pathnorm"
	"texmanifest/internal/services"
	"texmanifest/internal/udim"
)

// BuildConfig carries every manifest-level input of a build.
type BuildConfig struct {
	RmanTree string
	RmsTree  string
	OCIO     string
	Bxdf     string
	SaveTo   string

	// ExportDir receives every exported channel image.
	ExportDir string
	// ImageExt is the extension of exported images, for example ".png".
	ImageExt string
	// NormalProfile names the host conversion used for normal channels.
	NormalProfile string

	// Tiles, when set, is consulted to warn about documents whose UV tile
	// layout disagrees with the name-based classification.
	Tiles  host.TileInspector
	Logger *slog.Logger
}

// Build exports every included channel of doc through exp and returns the
// manifest describing the exported files. The first failing export aborts
// the build.
func Build(ctx context.Context, doc host.Document, exp host.Exporter, cfg BuildConfig) (Manifest, error) {
	if exp == nil {
		return Manifest{}, services.Wrap(services.ErrExport, "build", "validate inputs", "host exporter unavailable", nil)
	}
	logger := logging.WithContext(ctx, logging.NewComponentLogger(cfg.Logger, "manifest"))

	isUDIM := udim.Classify(doc.MaterialNames())
	logger.Debug("document classified",
		logging.Args(logging.DecisionAttrs("udim", fmt.Sprintf("%t", isUDIM), "material names")...)...,
	)
	warnTileMismatch(logger, doc, cfg.Tiles, isUDIM)

	exportDir := filepath.ToSlash(cfg.ExportDir)
	g := newGroup(isUDIM)
	owners := make(map[string]string)
	for _, mat := range doc.Materials {
		ts := g.open(mat)
		for _, ch := range mat.Channels {
			decision := channel.Decide(ch, isUDIM)
			if !decision.Included {
				logger.Debug("channel skipped",
					logging.String("material", mat.Name),
					logging.String("channel", ch),
				)
				continue
			}

			outputPath := pathnorm.OSPath(path.Join(exportDir, decision.FileName(mat.Name, cfg.ImageExt)))
			key := pathnorm.ManifestPath(outputPath)
			if prev, taken := owners[key]; taken {
				return Manifest{}, services.Wrap(
					services.ErrExport,
					"build",
					"export "+mat.Name+"/"+ch,
					fmt.Sprintf("output path %s already used by %s", outputPath, prev),
					nil,
				)
			}
			owners[key] = mat.Name + "/" + ch
			if err := exportChannel(ctx, exp, mat.Name, decision, cfg.NormalProfile, outputPath); err != nil {
				return Manifest{}, services.Wrap(
					services.ErrExport,
					"build",
					"export "+mat.Name+"/"+ch,
					"host export failed",
					err,
				)
			}
			ts.add(ch, outputPath)
		}
	}

	m := Manifest{
		Scene:       doc.Scene,
		HostVersion: doc.HostVersion,
		RmanTree:    cfg.RmanTree,
		RmsTree:     cfg.RmsTree,
		OCIO:        cfg.OCIO,
		Bxdf:        cfg.Bxdf,
		UDIM:        isUDIM,
		SaveTo:      cfg.SaveTo,
		Document:    g.sets(),
	}
	summary := m.Summary()
	logger.Info("manifest built",
		logging.Bool("udim", isUDIM),
		logging.Int("texture_sets", summary.TextureSets),
		logging.Int("files", summary.Files),
	)
	return m, nil
}

func exportChannel(ctx context.Context, exp host.Exporter, material string, decision channel.Decision, profile, outputPath string) error {
	if decision.Converted {
		return exp.ConvertExport(ctx, material, profile, outputPath)
	}
	return exp.Export(ctx, material, decision.Channel, outputPath)
}

func warnTileMismatch(logger *slog.Logger, doc host.Document, tiles host.TileInspector, isUDIM bool) {
	if tiles == nil {
		return
	}
	var mismatched []string
	for _, mat := range doc.Materials {
		if tiles.HasUVTiles(mat.Name) != isUDIM {
			mismatched = append(mismatched, mat.Name)
		}
	}
	if len(mismatched) == 0 {
		return
	}
	logging.WarnWithContext(logger, "uv tile layout disagrees with material names", "udim_mismatch",
		logging.Bool("udim", isUDIM),
		logging.Strings("materials", mismatched),
		logging.String(logging.FieldImpact, "classification follows material names"),
	)
}

package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"texmanifest/internal/config"
	"texmanifest/internal/converter"
	"texmanifest/internal/host"
	"texmanifest/internal/logging"
	"texmanifest/internal/manifest"
	"texmanifest/internal/preflight"
	"texmanifest/internal/services"
	"texmanifest/internal/settings"
)

// ErrLocked reports that another export holds the manifest lock.
var ErrLocked = errors.New("export already running")

// Request describes one export run.
type Request struct {
	Config   *config.Config
	Document host.Document
	Exporter host.Exporter
	// Tiles is optional; see manifest.BuildConfig.
	Tiles host.TileInspector
	// Settings supplies RMANTREE, RMSTREE and OCIO.
	Settings settings.Store
	// Prefs, when set, records the bxdf of a successful run.
	Prefs settings.Writer

	// Bxdf overrides the configured default.
	Bxdf string
	// Scene overrides the document's scene name.
	Scene string
	// DryRun builds and writes the manifest without running the converter.
	DryRun bool

	Executor converter.Executor
	Logger   *slog.Logger
}

// Result describes a finished run.
type Result struct {
	RunID        string
	ManifestPath string
	Manifest     manifest.Manifest
	Output       []string
	Duration     time.Duration
}

// Run executes one export. Configuration problems are reported before any
// host export call, file write or subprocess.
func Run(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(req.Logger, "export"))

	res := Result{RunID: runID}
	err := run(ctx, req, logger, &res)
	res.Duration = time.Since(start)
	if err != nil {
		logger.Error("export failed",
			logging.String(logging.FieldEventType, "export_failed"),
			logging.String("error_kind", services.Kind(err)),
			logging.Error(err),
			logging.Any("duration", res.Duration),
		)
		return res, err
	}

	summary := res.Manifest.Summary()
	logger.Info("export complete",
		logging.String(logging.FieldEventType, "export_complete"),
		logging.String("manifest", res.ManifestPath),
		logging.Int("texture_sets", summary.TextureSets),
		logging.Int("files", summary.Files),
		logging.Bool("dry_run", req.DryRun),
		logging.Any("duration", res.Duration),
	)
	return res, nil
}

func run(ctx context.Context, req Request, logger *slog.Logger, res *Result) error {
	cfg := req.Config
	if cfg == nil {
		return services.Wrap(services.ErrConfiguration, "export", "validate request", "configuration required", nil)
	}
	if req.Exporter == nil {
		return services.Wrap(services.ErrConfiguration, "export", "validate request", "host exporter required", nil)
	}

	configCtx := services.WithStage(ctx, "configure")
	values, err := settings.Resolve(configCtx, req.Settings, cfg.Export.MandatorySettings)
	if err != nil {
		return err
	}
	if err := converter.CheckRendererVersion(values.Value(settings.KeyRmanTree), cfg.Converter.MinRendererVersion); err != nil {
		if !errors.Is(err, converter.ErrRendererUnknown) {
			return err
		}
		logging.WarnWithContext(logger, "renderer version check skipped", "renderer_version_unknown",
			logging.String("min_renderer_version", cfg.Converter.MinRendererVersion),
			logging.Error(err),
		)
	}

	gatewayOpts := []converter.Option{converter.WithLogger(req.Logger)}
	if req.Executor != nil {
		gatewayOpts = append(gatewayOpts, converter.WithExecutor(req.Executor))
	}
	gateway, err := converter.New(cfg.Converter.Command, gatewayOpts...)
	if err != nil {
		return err
	}

	checks := []preflight.Result{preflight.CheckDirectoryAccess("Export directory", cfg.Paths.ExportDir)}
	if !req.DryRun && req.Executor == nil {
		checks = append(checks, preflight.CheckBinary("Converter", gateway.Argv()[0]))
	}
	if err := preflight.Err(checks); err != nil {
		return err
	}

	res.ManifestPath = cfg.ManifestPath()
	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrExport, "lock", cfg.LockPath(), "acquire export lock", err)
	}
	if !locked {
		return services.Wrap(services.ErrExport, "lock", cfg.LockPath(), "another export is writing this manifest", ErrLocked)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release export lock", logging.Error(err))
		}
	}()

	bxdf := strings.TrimSpace(req.Bxdf)
	if bxdf == "" {
		bxdf = cfg.Export.Bxdf
	}
	doc := req.Document
	if scene := strings.TrimSpace(req.Scene); scene != "" {
		doc.Scene = scene
	}

	logger.Info("export started",
		logging.String(logging.FieldEventType, "export_start"),
		logging.String("scene", doc.Scene),
		logging.String("bxdf", bxdf),
		logging.Int("materials", len(doc.Materials)),
	)

	m, err := manifest.Build(services.WithStage(ctx, "build"), doc, req.Exporter, manifest.BuildConfig{
		RmanTree:      values.Value(settings.KeyRmanTree),
		RmsTree:       values.Value(settings.KeyRmsTree),
		OCIO:          values.Value(settings.KeyOCIO),
		Bxdf:          bxdf,
		SaveTo:        cfg.Paths.SaveTo,
		ExportDir:     cfg.Paths.ExportDir,
		ImageExt:      cfg.Export.ImageExt,
		NormalProfile: cfg.Export.NormalProfile,
		Tiles:         req.Tiles,
		Logger:        req.Logger,
	})
	if err != nil {
		return err
	}
	res.Manifest = m

	if req.DryRun {
		if err := manifest.Write(res.ManifestPath, m); err != nil {
			return err
		}
		logger.Info("converter skipped", logging.Args(logging.DecisionAttrs("converter", "skipped", "dry run")...)...)
	} else {
		lines, err := gateway.Invoke(services.WithStage(ctx, "convert"), m, res.ManifestPath)
		res.Output = lines
		if err != nil {
			return err
		}
	}

	if req.Prefs != nil {
		if err := req.Prefs.Set(ctx, settings.KeyLastBxdf, bxdf); err != nil {
			logging.WarnWithContext(logger, "failed to remember bxdf", "prefs_write_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, fmt.Sprintf("next export defaults to %s", cfg.Export.Bxdf)),
			)
		}
	}
	return nil
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"texmanifest/internal/export"
	"texmanifest/internal/host/fshost"
	"texmanifest/internal/manifest"
	"texmanifest/internal/settings"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var documentPath string
	var bxdf string
	var scene string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every channel of a document and run the asset converter",
		Long: "Export every channel of a directory-backed host document into the export\n" +
			"directory, write the manifest and hand it to the configured converter.\n" +
			"The bxdf defaults to the last one used, then to the configured default.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(documentPath) == "" {
				return fmt.Errorf("--document is required")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			h, err := fshost.Load(documentPath)
			if err != nil {
				return err
			}

			return ctx.withSettings(func(layered settings.Layered, prefs *settings.SQLiteStore) error {
				chosen := strings.TrimSpace(bxdf)
				if chosen == "" {
					last, ok, err := prefs.Get(cmd.Context(), settings.KeyLastBxdf)
					if err != nil {
						return err
					}
					if ok {
						chosen = last
					}
				}

				res, err := export.Run(cmd.Context(), export.Request{
					Config:   cfg,
					Document: h.Document(),
					Exporter: h,
					Tiles:    h,
					Settings: layered,
					Prefs:    prefs,
					Bxdf:     chosen,
					Scene:    scene,
					DryRun:   dryRun,
					Logger:   logger,
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTextureSets(res.Manifest))
				status := newStatusWriter(out)
				status.line("Manifest", statusInfo, res.ManifestPath)
				status.line("Run", statusInfo, res.RunID)
				if dryRun {
					status.line("Converter", statusWarn, "skipped (dry run)")
				} else {
					status.line("Converter", statusOK, fmt.Sprintf("%d lines", len(res.Output)))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&documentPath, "document", "d", "", "Path to the host document description (document.toml)")
	cmd.Flags().StringVar(&bxdf, "bxdf", "", "Bxdf passed through to the converter")
	cmd.Flags().StringVar(&scene, "scene", "", "Override the document's scene name")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Write the manifest without running the converter")
	return cmd
}

func renderTextureSets(m manifest.Manifest) string {
	rows := make([][]string, 0, len(m.Document))
	for _, ts := range m.Document {
		files := 0
		for _, paths := range ts.Channels {
			files += len(paths)
		}
		rows = append(rows, []string{
			ts.Name,
			ts.Resolution.String(),
			strings.Join(ts.ChannelNames(), ", "),
			strconv.Itoa(files),
		})
	}
	summary := m.Summary()
	return tableSpec{
		Headers: []string{"Texture Set", "Resolution", "Channels", "Files"},
		Rows:    rows,
		Align:   []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
		Caption: fmt.Sprintf("%d texture sets, %d channels, %d files", summary.TextureSets, summary.Channels, summary.Files),
	}.render()
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"texmanifest/internal/converter"
	"texmanifest/internal/preflight"
	"texmanifest/internal/settings"
)

var errChecksFailed = errors.New("one or more checks failed")

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify settings, directories and the converter before exporting",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			status := newStatusWriter(cmd.OutOrStdout())
			report := status.check

			err = ctx.withSettings(func(layered settings.Layered, _ *settings.SQLiteStore) error {
				values, err := settings.Resolve(cmd.Context(), layered, cfg.Export.MandatorySettings)
				if err != nil {
					report("Settings", false, err.Error())
				} else {
					report("Settings", true, fmt.Sprintf("%d mandatory keys resolved", len(cfg.Export.MandatorySettings)))
					err := converter.CheckRendererVersion(values.Value(settings.KeyRmanTree), cfg.Converter.MinRendererVersion)
					if errors.Is(err, converter.ErrRendererUnknown) {
						status.line("Renderer", statusWarn, err.Error())
					} else if err != nil {
						report("Renderer", false, err.Error())
					} else if v, verr := converter.RendererVersion(values.Value(settings.KeyRmanTree)); verr == nil {
						report("Renderer", true, v.Original())
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			binary := ""
			if gateway, err := converter.New(cfg.Converter.Command); err != nil {
				report("Converter command", false, err.Error())
			} else {
				binary = gateway.Argv()[0]
			}
			for _, r := range preflight.RunAll(cfg, binary) {
				report(r.Name, r.Passed, r.Detail)
			}

			if status.errors > 0 {
				return errChecksFailed
			}
			return nil
		},
	}
}

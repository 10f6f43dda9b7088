package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"texmanifest/internal/channel"
)

func newChannelsCommand() *cobra.Command {
	var tiled bool
	var ext string

	cmd := &cobra.Command{
		Use:         "channels [channel...]",
		Short:       "Show the export policy for channels",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = channel.Known()
			}
			sample := "material"
			if tiled {
				sample = "1001"
			}
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				d := channel.Decide(name, tiled)
				file := "-"
				if d.Included {
					file = d.FileName(sample, ext)
				}
				rows = append(rows, []string{
					name,
					yesNo(d.Included),
					d.Colorspace.String(),
					d.Template.String(),
					yesNo(d.Converted),
					file,
				})
			}
			title := "Per-material naming"
			if tiled {
				title = "UDIM tile naming"
			}
			fmt.Fprintln(cmd.OutOrStdout(), tableSpec{
				Title:   title,
				Headers: []string{"Channel", "Included", "Colorspace", "Template", "Converted", "Example"},
				Rows:    rows,
			}.render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&tiled, "udim", false, "Show tile naming instead of per-material naming")
	cmd.Flags().StringVar(&ext, "ext", ".png", "Image extension for example file names")
	return cmd
}

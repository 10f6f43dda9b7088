package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"texmanifest/internal/manifest"
	"texmanifest/internal/udim"
)

func newManifestCommand() *cobra.Command {
	manifestCmd := &cobra.Command{
		Use:   "manifest",
		Short: "Inspect export manifests",
	}
	manifestCmd.AddCommand(newManifestShowCommand())
	return manifestCmd
}

func newManifestShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "show <file>",
		Short:       "Print the header and texture sets of a manifest",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Read(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			status := newStatusWriter(out)
			mode := "per-material"
			if m.UDIM {
				mode = "udim"
			}
			status.line("Scene", statusInfo, m.Scene)
			status.line("Host version", statusInfo, m.HostVersion)
			status.line("Bxdf", statusInfo, m.Bxdf)
			status.line("Layout", statusInfo, mode)
			status.line("RMANTREE", settingKind(m.RmanTree), m.RmanTree)
			status.line("RMSTREE", settingKind(m.RmsTree), m.RmsTree)
			status.line("OCIO", settingKind(m.OCIO), m.OCIO)
			status.line("Save to", statusInfo, m.SaveTo)
			fmt.Fprintln(out, renderTextureSets(m))
			if m.UDIM {
				fmt.Fprintln(out, renderTileReferences(m))
			}
			return nil
		},
	}
}

func settingKind(value string) statusKind {
	if value == "" {
		return statusWarn
	}
	return statusInfo
}

// renderTileReferences collapses the per-tile files of each channel into the
// texture reference the converter sees.
func renderTileReferences(m manifest.Manifest) string {
	var rows [][]string
	for _, ts := range m.Document {
		for _, name := range ts.ChannelNames() {
			var refs, tiles []string
			for _, p := range ts.Channels[name] {
				if ref := udim.Placeholder(p); !slices.Contains(refs, ref) {
					refs = append(refs, ref)
				}
				if n, ok := udim.TileOf(p); ok {
					tiles = append(tiles, strconv.Itoa(n))
				}
			}
			rows = append(rows, []string{name, strings.Join(refs, ", "), tileSpan(tiles)})
		}
	}
	return tableSpec{
		Title:   "Tile references",
		Headers: []string{"Channel", "Reference", "Tiles"},
		Rows:    rows,
	}.render()
}

func tileSpan(tiles []string) string {
	if len(tiles) == 0 {
		return "-"
	}
	slices.Sort(tiles)
	tiles = slices.Compact(tiles)
	if len(tiles) == 1 {
		return tiles[0]
	}
	return fmt.Sprintf("%s-%s (%d)", tiles[0], tiles[len(tiles)-1], len(tiles))
}

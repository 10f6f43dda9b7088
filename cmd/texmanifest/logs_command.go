package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"texmanifest/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var runID string
	var where []string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the export log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.LogFilePath()
			filters := []logs.Filter{logs.RunFilter(runID)}
			for _, clause := range where {
				f, err := logs.ParseWhere(clause)
				if err != nil {
					return fmt.Errorf("--where: %w", err)
				}
				filters = append(filters, f)
			}
			filter := logs.All(filters...)
			out := cmd.OutOrStdout()

			tail, offset, err := logs.Last(path, lines, filter)
			if err != nil {
				return err
			}
			for _, line := range tail {
				fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}

			_, err = logs.Follow(cmd.Context(), path, offset, 250*time.Millisecond, filter, func(line string) {
				fmt.Fprintln(out, line)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing lines as they are written")
	cmd.Flags().StringVar(&runID, "run", "", "Only show lines of one export run")
	cmd.Flags().StringArrayVar(&where, "where", nil, "Only show JSON lines matching PATH=VALUE (JSONPath or field name; repeatable)")
	return cmd
}

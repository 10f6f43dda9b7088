package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"texmanifest/internal/settings"
)

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Maintain persistent export settings",
	}
	settingsCmd.AddCommand(newSettingsGetCommand(ctx))
	settingsCmd.AddCommand(newSettingsSetCommand(ctx))
	settingsCmd.AddCommand(newSettingsUnsetCommand(ctx))
	settingsCmd.AddCommand(newSettingsListCommand(ctx))
	return settingsCmd
}

func newSettingsGetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the effective value of a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSettings(func(layered settings.Layered, _ *settings.SQLiteStore) error {
				value, ok, err := layered.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("setting %q is not set", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			})
		},
	}
}

func newSettingsSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist a setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSettings(func(_ settings.Layered, prefs *settings.SQLiteStore) error {
				if err := prefs.Set(cmd.Context(), strings.TrimSpace(args[0]), args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", strings.TrimSpace(args[0]))
				return nil
			})
		},
	}
}

func newSettingsUnsetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a persisted setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSettings(func(_ settings.Layered, prefs *settings.SQLiteStore) error {
				if err := prefs.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
				return nil
			})
		},
	}
}

func newSettingsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List persisted settings and --set overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := ctx.overrides()
			if err != nil {
				return err
			}
			return ctx.withSettings(func(_ settings.Layered, prefs *settings.SQLiteStore) error {
				entries, err := prefs.List(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				keys := overrides.Keys()
				if len(entries) == 0 && len(keys) == 0 {
					fmt.Fprintf(out, "No settings stored in %s\n", prefs.Path())
					return nil
				}
				rows := make([][]string, 0, len(entries)+len(keys))
				for _, key := range keys {
					value, _, _ := overrides.Get(cmd.Context(), key)
					rows = append(rows, []string{key, value, "--set"})
				}
				for _, e := range entries {
					updated := ""
					if !e.UpdatedAt.IsZero() {
						updated = e.UpdatedAt.Local().Format(time.DateTime)
					}
					rows = append(rows, []string{e.Key, e.Value, updated})
				}
				fmt.Fprintln(out, renderTable([]string{"Key", "Value", "Updated"}, rows, nil))
				return nil
			})
		},
	}
}

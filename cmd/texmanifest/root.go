package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var settingFlags []string

	ctx := newCommandContext(&configFlag, &settingFlags)

	rootCmd := &cobra.Command{
		Use:           "texmanifest",
		Short:         "Texture export manifest builder",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringArrayVar(&settingFlags, "set", nil, "Override a setting for this invocation (KEY=VALUE, repeatable)")

	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newChannelsCommand())
	rootCmd.AddCommand(newManifestCommand())
	rootCmd.AddCommand(newSettingsCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newLogsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"texmanifest/internal/config"
	"texmanifest/internal/logging"
	"texmanifest/internal/settings"
)

type commandContext struct {
	configFlag   *string
	settingFlags *[]string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, settingFlags *[]string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		settingFlags: settingFlags,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg)
}

// overrides parses --set flags into an in-memory store.
func (c *commandContext) overrides() (*settings.MapStore, error) {
	values := map[string]string{}
	if c.settingFlags != nil {
		for _, raw := range *c.settingFlags {
			key, value, ok := strings.Cut(raw, "=")
			key = strings.TrimSpace(key)
			if !ok || key == "" {
				return nil, fmt.Errorf("invalid --set %q: expected KEY=VALUE", raw)
			}
			values[key] = value
		}
	}
	return settings.NewMapStore(values), nil
}

// withSettings opens the persistent store and layers --set overrides and the
// environment on top of it.
func (c *commandContext) withSettings(fn func(layered settings.Layered, prefs *settings.SQLiteStore) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	overrides, err := c.overrides()
	if err != nil {
		return err
	}
	prefs, err := settings.Open(cfg.Paths.SettingsDB)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	defer prefs.Close()

	return fn(settings.Layered{overrides, settings.NewEnvStore(), prefs}, prefs)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

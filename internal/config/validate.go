package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-version"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateConverter(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.ExportDir == "" {
		return errors.New("paths.export_dir must be set")
	}
	name := c.Paths.ManifestName
	if name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("paths.manifest_name must be a file name, got %q", name)
	}
	return nil
}

func (c *Config) validateConverter() error {
	if c.Converter.Command == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("converter.command is required. Set TEXMANIFEST_CONVERTER or edit %s (create with 'texmanifest config init')", defaultPath)
	}
	if c.Converter.MinRendererVersion != "" {
		if _, err := version.NewVersion(c.Converter.MinRendererVersion); err != nil {
			return fmt.Errorf("converter.min_renderer_version: %w", err)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateExport() error {
	if strings.ContainsAny(c.Export.ImageExt, `/\`) {
		return fmt.Errorf("export.image_ext must not contain path separators, got %q", c.Export.ImageExt)
	}
	if c.Export.Bxdf == "" {
		return errors.New("export.bxdf must be set")
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeConverter()
	c.normalizeExport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.ExportDir) == "" {
		c.Paths.ExportDir = defaultExportDir
	}
	if c.Paths.ExportDir, err = expandPath(c.Paths.ExportDir); err != nil {
		return fmt.Errorf("paths.export_dir: %w", err)
	}
	c.Paths.ManifestName = strings.TrimSpace(c.Paths.ManifestName)
	if c.Paths.ManifestName == "" {
		c.Paths.ManifestName = defaultManifestName
	}
	if c.Paths.SaveTo, err = expandPath(strings.TrimSpace(c.Paths.SaveTo)); err != nil {
		return fmt.Errorf("paths.save_to: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.SettingsDB) == "" {
		c.Paths.SettingsDB = defaultSettingsDB
	}
	if c.Paths.SettingsDB, err = expandPath(c.Paths.SettingsDB); err != nil {
		return fmt.Errorf("paths.settings_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeConverter() {
	if value, ok := os.LookupEnv("TEXMANIFEST_CONVERTER"); ok && strings.TrimSpace(value) != "" {
		c.Converter.Command = value
	}
	c.Converter.Command = strings.TrimSpace(c.Converter.Command)
	c.Converter.MinRendererVersion = strings.TrimSpace(c.Converter.MinRendererVersion)
}

func (c *Config) normalizeExport() {
	c.Export.Bxdf = strings.TrimSpace(c.Export.Bxdf)
	if c.Export.Bxdf == "" {
		c.Export.Bxdf = defaultBxdf
	}
	ext := strings.ToLower(strings.TrimSpace(c.Export.ImageExt))
	if ext == "" {
		ext = defaultImageExt
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Export.ImageExt = ext
	c.Export.NormalProfile = strings.TrimSpace(c.Export.NormalProfile)
	if c.Export.NormalProfile == "" {
		c.Export.NormalProfile = defaultNormalProfile
	}

	keys := make([]string, 0, len(c.Export.MandatorySettings))
	seen := make(map[string]struct{}, len(c.Export.MandatorySettings))
	for _, key := range c.Export.MandatorySettings {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	c.Export.MandatorySettings = keys
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// LogFilePath returns the log file written alongside console output.
func (c *Config) LogFilePath() string {
	if c.Paths.LogDir == "" {
		return ""
	}
	return filepath.Join(c.Paths.LogDir, "texmanifest.log")
}

package config

const (
	defaultConfigPath         = "~/.config/texmanifest/config.toml"
	defaultExportDir          = "~/.local/share/texmanifest/export/RenderMan"
	defaultManifestName       = "RmanExport.json"
	defaultSaveTo             = "~/RenderManAssetLibrary/Materials"
	defaultLogDir             = "~/.local/share/texmanifest/logs"
	defaultSettingsDB         = "~/.local/share/texmanifest/settings.db"
	defaultConverterCommand   = "python rmanAssetsSubstancePainter.py"
	defaultMinRendererVersion = "24.1"
	defaultBxdf               = "PxrDisney"
	defaultImageExt           = ".png"
	defaultNormalProfile      = "normal_mesh_height"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ExportDir:    defaultExportDir,
			ManifestName: defaultManifestName,
			SaveTo:       defaultSaveTo,
			LogDir:       defaultLogDir,
			SettingsDB:   defaultSettingsDB,
		},
		Converter: Converter{
			Command:            defaultConverterCommand,
			MinRendererVersion: defaultMinRendererVersion,
		},
		Export: Export{
			Bxdf:              defaultBxdf,
			ImageExt:          defaultImageExt,
			NormalProfile:     defaultNormalProfile,
			MandatorySettings: []string{"RMANTREE", "RMSTREE"},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

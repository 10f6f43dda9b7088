package testsupport

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"texmanifest/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options. Directories are
// created so exports can run immediately.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ExportDir = filepath.Join(base, "export")
	cfgVal.Paths.SaveTo = filepath.Join(base, "library")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.SettingsDB = filepath.Join(base, "state", "settings.db")
	cfgVal.Converter.Command = "true"
	cfgVal.Converter.MinRendererVersion = ""

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithConverterCommand overrides the converter command on the test config.
func WithConverterCommand(command string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Converter.Command = command
	}
}

// WithMinRendererVersion sets the renderer version gate.
func WithMinRendererVersion(v string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Converter.MinRendererVersion = v
	}
}

// WithStubConverter writes a shell script that prints stdout, exits with
// code and uses it as the converter command. The script also copies its
// last argument to <base>/converter.args so tests can inspect it.
func WithStubConverter(stdout string, code int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Converter.Command = StubScript(b.t, b.baseDir, "converter", stdout, code)
	}
}

// StubScript writes an executable shell script named name under dir/bin and
// returns its path.
func StubScript(t testing.TB, dir, name, stdout string, code int) string {
	t.Helper()
	binDir := filepath.Join(dir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	argsFile := filepath.Join(dir, name+".args")
	script := "#!/bin/sh\n" +
		"for last; do :; done\n" +
		"printf '%s' \"$last\" > '" + argsFile + "'\n" +
		"printf '%s' '" + stdout + "'\n" +
		"exit " + strconv.Itoa(code) + "\n"
	target := filepath.Join(binDir, name)
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}

// StubArgs returns the last argument recorded by a StubScript run.
func StubArgs(t testing.TB, cfg *config.Config, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(BaseDir(cfg), name+".args"))
	if err != nil {
		t.Fatalf("read stub args: %v", err)
	}
	return string(data)
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.ExportDir)
}

package preflight

import (
	"fmt"
	"strings"

	"texmanifest/internal/config"
	"texmanifest/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the preflight checks for cfg. converterBinary is the
// resolved first word of the converter command.
func RunAll(cfg *config.Config, converterBinary string) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Export directory", cfg.Paths.ExportDir),
		CheckBinary("Converter", converterBinary),
	}
	return results
}

// Err folds failed results into a configuration error, or nil when every
// check passed.
func Err(results []Result) error {
	var failed []string
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return services.Wrap(services.ErrConfiguration, "preflight", "", strings.Join(failed, "; "), nil)
}

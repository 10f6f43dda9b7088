package converter

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/go-version"

	"texmanifest/internal/services"
)

// ErrRendererUnknown reports an RMANTREE that is empty or does not name a
// versioned install. The version gate cannot judge such installs.
var ErrRendererUnknown = errors.New("renderer version unknown")

var rendererDirPattern = regexp.MustCompile(`RenderManProServer-(\d+(?:\.\d+)+)`)

// RendererVersion extracts the renderer version from an install path such as
// /opt/pixar/RenderManProServer-25.2.
func RendererVersion(rmantree string) (*version.Version, error) {
	cleaned := filepath.ToSlash(strings.TrimSpace(rmantree))
	if cleaned == "" {
		return nil, fmt.Errorf("%w: RMANTREE not set", ErrRendererUnknown)
	}
	match := rendererDirPattern.FindStringSubmatch(cleaned)
	if match == nil {
		return nil, fmt.Errorf("%w: no version in %q", ErrRendererUnknown, rmantree)
	}
	v, err := version.NewVersion(match[1])
	if err != nil {
		return nil, fmt.Errorf("parse renderer version %q: %w", match[1], err)
	}
	return v, nil
}

// CheckRendererVersion rejects renderer installs older than minimum. An empty
// minimum disables the check. An install whose version cannot be read returns
// ErrRendererUnknown, which callers treat as a warning.
func CheckRendererVersion(rmantree, minimum string) error {
	minimum = strings.TrimSpace(minimum)
	if minimum == "" {
		return nil
	}
	want, err := version.NewVersion(minimum)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "preflight", "renderer version", "invalid minimum version", err)
	}
	got, err := RendererVersion(rmantree)
	if errors.Is(err, ErrRendererUnknown) {
		return err
	}
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "preflight", "renderer version", "unreadable renderer version", err)
	}
	if got.LessThan(want) {
		return services.Wrap(
			services.ErrConfiguration,
			"preflight",
			"renderer version",
			fmt.Sprintf("renderer %s is older than required %s", got.Original(), want.Original()),
			nil,
		)
	}
	return nil
}

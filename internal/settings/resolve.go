package settings

import (
	"context"
	"fmt"
	"strings"

	"texmanifest/internal/services"
)

// Values holds resolved settings keyed by name.
type Values map[string]string

// Value returns the resolved value for key, or empty when absent.
func (v Values) Value(key string) string {
	return v[key]
}

// Resolve reads every mandatory key plus the optional well-known keys from
// store. Missing mandatory keys are reported together as a configuration
// error.
func Resolve(ctx context.Context, store Store, mandatory []string) (Values, error) {
	if store == nil {
		store = Layered(nil)
	}
	values := make(Values, len(mandatory)+1)
	var missing []string
	for _, key := range mandatory {
		value, ok, err := store.Get(ctx, key)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "settings", "read "+key, "settings lookup failed", err)
		}
		if !ok || strings.TrimSpace(value) == "" {
			missing = append(missing, key)
			continue
		}
		values[key] = value
	}
	if len(missing) > 0 {
		return nil, services.Wrap(
			services.ErrConfiguration,
			"settings",
			"resolve",
			fmt.Sprintf("missing mandatory settings: %s", strings.Join(missing, ", ")),
			nil,
		)
	}

	for _, key := range []string{KeyRmanTree, KeyRmsTree, KeyOCIO} {
		if _, done := values[key]; done {
			continue
		}
		value, ok, err := store.Get(ctx, key)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "settings", "read "+key, "settings lookup failed", err)
		}
		if ok {
			values[key] = value
		}
	}
	return values, nil
}

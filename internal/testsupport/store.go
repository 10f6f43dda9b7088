package testsupport

import (
	"testing"

	"texmanifest/internal/config"
	"texmanifest/internal/settings"
)

// MustOpenSettings opens the config's settings database and registers cleanup.
func MustOpenSettings(t testing.TB, cfg *config.Config) *settings.SQLiteStore {
	t.Helper()

	store, err := settings.Open(cfg.Paths.SettingsDB)
	if err != nil {
		t.Fatalf("settings.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

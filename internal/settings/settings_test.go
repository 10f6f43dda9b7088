package settings

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"texmanifest/internal/services"
)

func TestResolveReportsEveryMissingKey(t *testing.T) {
	store := NewMapStore(map[string]string{KeyOCIO: "/ocio/config.ocio"})

	_, err := Resolve(context.Background(), store, []string{KeyRmanTree, KeyRmsTree})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	for _, key := range []string{KeyRmanTree, KeyRmsTree} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("error %q should name %s", err, key)
		}
	}
}

func TestResolveTreatsBlankAsMissing(t *testing.T) {
	store := NewMapStore(map[string]string{KeyRmanTree: "  "})
	if _, err := Resolve(context.Background(), store, []string{KeyRmanTree}); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestResolveIncludesOptionalKeys(t *testing.T) {
	store := NewMapStore(map[string]string{
		KeyRmanTree: "/opt/pixar/RenderManProServer-25.2",
		KeyRmsTree:  "/opt/pixar/RenderManForSubstance",
	})

	values, err := Resolve(context.Background(), store, []string{KeyRmanTree, KeyRmsTree})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if values.Value(KeyRmanTree) != "/opt/pixar/RenderManProServer-25.2" {
		t.Fatalf("unexpected RMANTREE %q", values.Value(KeyRmanTree))
	}
	if _, ok := values[KeyOCIO]; ok {
		t.Fatalf("absent OCIO should not be present, got %q", values[KeyOCIO])
	}
}

func TestLayeredFirstStoreWins(t *testing.T) {
	override := NewMapStore(map[string]string{KeyRmanTree: "/override"})
	base := NewMapStore(map[string]string{KeyRmanTree: "/base", KeyOCIO: "/ocio"})
	layered := Layered{override, nil, base}

	ctx := context.Background()
	if v, ok, _ := layered.Get(ctx, KeyRmanTree); !ok || v != "/override" {
		t.Fatalf("expected override value, got %q ok=%v", v, ok)
	}
	if v, ok, _ := layered.Get(ctx, KeyOCIO); !ok || v != "/ocio" {
		t.Fatalf("expected fallback value, got %q ok=%v", v, ok)
	}
	if _, ok, _ := layered.Get(ctx, "missing"); ok {
		t.Fatal("expected missing key to be absent")
	}
}

func TestEnvStoreTreatsEmptyAsAbsent(t *testing.T) {
	t.Setenv("TEXMANIFEST_TEST_SET", "value")
	t.Setenv("TEXMANIFEST_TEST_EMPTY", "")

	store := NewEnvStore()
	ctx := context.Background()
	if v, ok, _ := store.Get(ctx, "TEXMANIFEST_TEST_SET"); !ok || v != "value" {
		t.Fatalf("expected env value, got %q ok=%v", v, ok)
	}
	if _, ok, _ := store.Get(ctx, "TEXMANIFEST_TEST_EMPTY"); ok {
		t.Fatal("empty env var should be absent")
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	if _, ok, err := store.Get(ctx, KeyLastBxdf); err != nil || ok {
		t.Fatalf("expected absent key, ok=%v err=%v", ok, err)
	}
	if err := store.Set(ctx, KeyLastBxdf, "PxrDisney"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, KeyLastBxdf, "PxrSurface"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if err := store.Set(ctx, KeyRmanTree, "/opt/rman"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	value, ok, err := store.Get(ctx, KeyLastBxdf)
	if err != nil || !ok || value != "PxrSurface" {
		t.Fatalf("unexpected value %q ok=%v err=%v", value, ok, err)
	}

	entries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 || entries[0].Key != KeyRmanTree || entries[1].Key != KeyLastBxdf {
		t.Fatalf("unexpected entries %#v", entries)
	}
	if entries[0].UpdatedAt.IsZero() {
		t.Fatal("expected updated_at to be parsed")
	}

	if err := store.Delete(ctx, KeyRmanTree); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, KeyRmanTree); ok {
		t.Fatal("expected deleted key to be absent")
	}
}

func TestSQLiteStorePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Set(context.Background(), KeyOCIO, "/ocio"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_ = store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	if v, ok, _ := reopened.Get(context.Background(), KeyOCIO); !ok || v != "/ocio" {
		t.Fatalf("expected persisted value, got %q ok=%v", v, ok)
	}
}

func TestRetryOnBusyStopsOnOtherErrors(t *testing.T) {
	calls := 0
	want := errors.New("boom")
	err := retryOnBusy(context.Background(), func() error {
		calls++
		return want
	})
	if !errors.Is(err, want) || calls != 1 {
		t.Fatalf("expected single attempt, got calls=%d err=%v", calls, err)
	}
}

func TestRetryOnBusyRetries(t *testing.T) {
	calls := 0
	err := retryOnBusy(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Fatalf("expected success after retries, got calls=%d err=%v", calls, err)
	}
}

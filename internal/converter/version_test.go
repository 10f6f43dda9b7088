package converter

import (
	"errors"
	"testing"

	"texmanifest/internal/services"
)

func TestRendererVersion(t *testing.T) {
	cases := []struct {
		path string
		want string
		ok   bool
	}{
		{"/opt/pixar/RenderManProServer-25.2", "25.2.0", true},
		{`C:\Program Files\Pixar\RenderManProServer-24.1\`, "24.1.0", true},
		{"/opt/pixar/RenderManProServer-26.0.1/bin", "26.0.1", true},
		{"/opt/pixar/renderman", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		v, err := RendererVersion(tc.path)
		if tc.ok != (err == nil) {
			t.Fatalf("%s: unexpected error state %v", tc.path, err)
		}
		if tc.ok && v.String() != tc.want {
			t.Fatalf("%s: got %s, want %s", tc.path, v, tc.want)
		}
	}
}

func TestCheckRendererVersion(t *testing.T) {
	if err := CheckRendererVersion("/opt/pixar/RenderManProServer-25.2", "24.1"); err != nil {
		t.Fatalf("newer renderer should pass: %v", err)
	}
	if err := CheckRendererVersion("/opt/pixar/RenderManProServer-24.1", "24.1"); err != nil {
		t.Fatalf("equal renderer should pass: %v", err)
	}
	if err := CheckRendererVersion("/opt/pixar/RenderManProServer-23.5", "24.1"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("older renderer should fail with configuration error, got %v", err)
	}
	for _, rmantree := range []string{"/opt/pixar/renderman", "", "  "} {
		err := CheckRendererVersion(rmantree, "24.1")
		if !errors.Is(err, ErrRendererUnknown) || errors.Is(err, services.ErrConfiguration) {
			t.Fatalf("%q: expected unknown-version error outside configuration errors, got %v", rmantree, err)
		}
	}
	if err := CheckRendererVersion("/anything", ""); err != nil {
		t.Fatalf("empty minimum disables the check: %v", err)
	}
}

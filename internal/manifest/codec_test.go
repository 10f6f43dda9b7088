package manifest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"texmanifest/internal/host"
	"texmanifest/internal/services"
)

func sampleManifest() Manifest {
	return Manifest{
		Scene:       "shot010",
		HostVersion: "10.1.0",
		RmanTree:    "/opt/pixar/RenderManProServer-25.2",
		RmsTree:     "/opt/pixar/RenderManForSubstance",
		OCIO:        "",
		Bxdf:        "PxrDisney",
		UDIM:        false,
		SaveTo:      "/library/materials",
		Document: []TextureSet{
			{
				Name:       "wood",
				Resolution: host.Resolution{Width: 1024, Height: 512},
				Channels: map[string][]string{
					"roughness": {"/export/wood_roughness_raw.png"},
					"diffuse":   {"/export/wood_diffuse_srgb_texture.png"},
				},
			},
		},
	}
}

func TestMarshalFormat(t *testing.T) {
	data, err := Marshal(sampleManifest())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	text := string(data)

	if !strings.HasPrefix(text, "{\n    \"scene\": \"shot010\",\n    \"sp_version\": \"10.1.0\",") {
		t.Fatalf("unexpected header:\n%s", text)
	}
	order := []string{`"scene"`, `"sp_version"`, `"RMANTREE"`, `"RMSTREE"`, `"OCIO"`, `"bxdf"`, `"udim"`, `"saveTo"`, `"document"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(text, key)
		if idx <= last {
			t.Fatalf("key %s out of order in:\n%s", key, text)
		}
		last = idx
	}
	if strings.Index(text, `"diffuse"`) > strings.Index(text, `"roughness"`) {
		t.Fatalf("channel keys should be sorted:\n%s", text)
	}
	if !strings.Contains(text, "\"resolution\": [\n                1024,\n                512\n            ]") {
		t.Fatalf("resolution should be a pair:\n%s", text)
	}
}

func TestMarshalRewritesBackslashes(t *testing.T) {
	m := sampleManifest()
	m.SaveTo = `C:\library\materials`
	m.Document[0].Channels["diffuse"] = []string{`C:\export\wood_diffuse_srgb_texture.png`}

	data, err := Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(data), `\\`) {
		t.Fatalf("manifest should carry no backslashes:\n%s", data)
	}
	if !strings.Contains(string(data), `"C:/export/wood_diffuse_srgb_texture.png"`) {
		t.Fatalf("expected forward-slash path:\n%s", data)
	}
	if m.Document[0].Channels["diffuse"][0] != `C:\export\wood_diffuse_srgb_texture.png` {
		t.Fatal("Marshal must not mutate its input")
	}
}

func TestMarshalDoesNotEscapeHTML(t *testing.T) {
	m := sampleManifest()
	m.Bxdf = "<PxrSurface>&"
	data, err := Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"bxdf": "<PxrSurface>&"`) {
		t.Fatalf("expected literal bxdf:\n%s", data)
	}
}

func TestRoundTrip(t *testing.T) {
	if filepath.Separator != '/' {
		t.Skip("separator rewrite is covered by TestMarshalRewritesBackslashes")
	}
	doc := host.Document{Scene: "shot", HostVersion: "10.1.0"}
	for _, name := range []string{"1001", "1002"} {
		doc.Materials = append(doc.Materials, host.Material{
			Name:       name,
			Resolution: host.Resolution{Width: 4096, Height: 4096},
			Channels:   []string{"basecolor", "normal", "roughness"},
		})
	}
	cfg := BuildConfig{Bxdf: "PxrDisney", ExportDir: "/export", ImageExt: ".png", RmanTree: "/rman"}
	built, err := Build(context.Background(), doc, &recordingExporter{}, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	data, err := Marshal(built)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	parsed, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(built, parsed) {
		t.Fatalf("round trip mismatch:\nbuilt  %#v\nparsed %#v", built, parsed)
	}
}

func TestUnmarshalRejectsBadResolution(t *testing.T) {
	_, err := Unmarshal([]byte(`{"document":[{"textureSet":"wood","resolution":[1,2,3],"channels":{}}]}`))
	if err == nil {
		t.Fatal("expected error for three-value resolution")
	}
}

func TestWriteOverwritesAndReads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "RmanExport.json")
	if err := os.WriteFile(path, []byte("stale contents that are longer than nothing"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	m := sampleManifest()
	if err := Write(path, m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Fatalf("read back mismatch:\n%#v\n%#v", got, m)
	}
}

func TestWriteMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "RmanExport.json")
	err := Write(path, sampleManifest())
	if !errors.Is(err, services.ErrManifestWrite) {
		t.Fatalf("expected manifest write error, got %v", err)
	}
}

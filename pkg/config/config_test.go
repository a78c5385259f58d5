package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/roomgen/pkg/catalog"
	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/pipeline"
)

const sample = `
[generator]
teams = 3
accelerate_until = 6
seed_template = "hall"

[run]
seed = 7
max_resets = 200
reset_delay = "50ms"
formats = ["text", "svg"]

[[template]]
name = "hall"
width = 5
height = 5
entrances = [{ side = "west", offset = 2 }, { side = "east", offset = 2 }]

[[template]]
name = "vault"
width = 3
height = 3
spawn = true
entrances = [{ side = "south", offset = 1 }]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	f, err := Load(writeFile(t, "roomgen.toml", sample))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if f.Generator.Teams != 3 || f.Generator.AccelerateUntil != 6 || f.Generator.SeedTemplate != "hall" {
		t.Errorf("Generator = %+v", f.Generator)
	}
	if f.Run.Seed != 7 || f.Run.MaxResets != 200 || len(f.Run.Formats) != 2 {
		t.Errorf("Run = %+v", f.Run)
	}
	if len(f.Templates) != 2 || f.Templates[1].Entrances[0].Side != catalog.South {
		t.Errorf("Templates = %+v", f.Templates)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "[generator]\nteam = 2\n"},
		{"bad delay", "[run]\nreset_delay = \"soon\"\n"},
		{"bad toml", "[generator\n"},
		{"bad side", "[[template]]\nname = \"x\"\nentrances = [{ side = \"up\" }]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "bad.toml", tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}

	if _, err := Load(""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Load(\"\") = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestApply(t *testing.T) {
	f, err := Load(writeFile(t, "roomgen.toml", sample))
	if err != nil {
		t.Fatal(err)
	}

	opts := pipeline.Options{Seed: 11}
	f.Apply(&opts)

	if opts.Seed != 11 {
		t.Errorf("Seed = %d, flag value should win", opts.Seed)
	}
	if opts.Teams != 3 || opts.MaxResets != 200 || opts.ResetDelay != 50*time.Millisecond {
		t.Errorf("Apply() = %+v", opts)
	}
	if len(opts.Templates) != 2 || opts.CatalogPath != "" {
		t.Errorf("inline templates should be used, got %d templates and path %q", len(opts.Templates), opts.CatalogPath)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("applied options should validate: %v", err)
	}
}

func TestApplyCatalogPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roomgen.toml")
	if err := os.WriteFile(path, []byte("[run]\ncatalog = \"rooms.toml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	var opts pipeline.Options
	f.Apply(&opts)
	if want := filepath.Join(dir, "rooms.toml"); opts.CatalogPath != want {
		t.Errorf("CatalogPath = %q, want %q", opts.CatalogPath, want)
	}

	opts = pipeline.Options{CatalogPath: "/elsewhere.toml"}
	f.Apply(&opts)
	if opts.CatalogPath != "/elsewhere.toml" {
		t.Errorf("CatalogPath = %q, flag value should win", opts.CatalogPath)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	f, err := Load(writeFile(t, "roomgen.toml", sample))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, *f); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	var back File
	if _, err := toml.Decode(buf.String(), &back); err != nil {
		t.Fatalf("toml.Decode() error: %v\n%s", err, buf.String())
	}
	if back.Generator != f.Generator || back.Run.ResetDelay != "50ms" || len(back.Templates) != 2 {
		t.Errorf("round trip = %+v", back)
	}
}

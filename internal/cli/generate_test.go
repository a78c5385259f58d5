package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var out bytes.Buffer
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(withLogger(context.Background(), newLogger(io.Discard, LogInfo)))
	return out.String(), err
}

func TestGenerateJSONToStdout(t *testing.T) {
	path := writeCatalog(t, cappedCatalog)
	out, err := runCLI(t, "generate", "--catalog", path, "--accelerate-until", "1", "-f", "json", "-q")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}

	var doc struct {
		Seed  uint64            `json:"seed"`
		Rooms []json.RawMessage `json:"rooms"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(doc.Rooms) != 5 {
		t.Errorf("rooms = %d, want 5", len(doc.Rooms))
	}
	if doc.Seed != 42 {
		t.Errorf("seed = %d, want default 42", doc.Seed)
	}
}

func TestGenerateTextToStdout(t *testing.T) {
	path := writeCatalog(t, cappedCatalog)
	out, err := runCLI(t, "generate", "--catalog", path, "--accelerate-until", "1", "-q")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	if !strings.Contains(out, "A") || !strings.Contains(out, "B") {
		t.Errorf("text map has no spawn anchors:\n%s", out)
	}
}

func TestGenerateWritesFiles(t *testing.T) {
	path := writeCatalog(t, cappedCatalog)
	base := filepath.Join(t.TempDir(), "out", "level")
	if _, err := runCLI(t, "generate", "--catalog", path, "--accelerate-until", "1",
		"-f", "text,json,dot", "-o", base, "-q"); err != nil {
		t.Fatalf("generate error = %v", err)
	}

	for _, ext := range []string{".txt", ".json", ".dot"} {
		data, err := os.ReadFile(base + ext)
		if err != nil {
			t.Errorf("missing %s: %v", ext, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", ext)
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	path := writeCatalog(t, cappedCatalog)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"multiple formats need output", []string{"-f", "text,json"}, "--output"},
		{"svg needs output", []string{"-f", "svg"}, "--output"},
		{"unknown format", []string{"-f", "png"}, "png"},
		{"too many teams", []string{"--teams", "100"}, "team"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"generate", "--catalog", path, "--accelerate-until", "1", "-q"}, tt.args...)
			_, err := runCLI(t, args...)
			if err == nil || !strings.Contains(strings.ToLower(err.Error()), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestGenerateConfigFile(t *testing.T) {
	catalogPath := writeCatalog(t, cappedCatalog)
	cfg := filepath.Join(t.TempDir(), "config.toml")
	body := "[generator]\naccelerate_until = 1\n\n[run]\nseed = 9\nformats = [\"json\"]\ncatalog = \"" + catalogPath + "\"\n"
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "generate", "-c", cfg, "-q")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	var doc struct {
		Seed uint64 `json:"seed"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if doc.Seed != 9 {
		t.Errorf("seed = %d, want 9 from config", doc.Seed)
	}
}

func TestWriteArtifactsSingle(t *testing.T) {
	out := filepath.Join(t.TempDir(), "map.txt")
	paths, err := writeArtifacts(out, []string{"text"}, map[string][]byte{"text": []byte("#\n")})
	if err != nil {
		t.Fatalf("writeArtifacts() error = %v", err)
	}
	if len(paths) != 1 || paths[0] != out {
		t.Errorf("paths = %v, want [%s]", paths, out)
	}
}

package cli

import (
	"os"
	"path/filepath"
	"testing"
)

// cappedCatalog is a hub plus a spawn closet. With --accelerate-until 1 the
// generator fills the hub's four doorways and accepts in four steps.
const cappedCatalog = `
[[template]]
name = "hub"
width = 3
height = 3
entrances = [
  { side = "west", offset = 1 },
  { side = "east", offset = 1 },
  { side = "north", offset = 1 },
  { side = "south", offset = 1 },
]

[[template]]
name = "cap"
width = 1
height = 1
spawn = true
entrances = [{ side = "east", offset = 0 }]
`

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rooms.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

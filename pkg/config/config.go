// Package config loads roomgen's TOML configuration file.
//
// A config file can hold generator settings, host loop settings and an
// inline catalog, so a single file describes a reproducible run:
//
//	[generator]
//	teams = 2
//	accelerate_until = 6
//	seed_template = "hall"
//
//	[run]
//	seed = 7
//	max_resets = 200
//	reset_delay = "50ms"
//	formats = ["text", "svg"]
//
//	[[template]]
//	name = "hall"
//	width = 5
//	height = 5
//	entrances = [{ side = "west", offset = 2 }, { side = "east", offset = 2 }]
//
// Values from the file only fill what the command line left unset. Inline
// templates take the place of run.catalog, which is resolved relative to
// the config file.
package config

import (
	"io"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/roomgen/pkg/catalog"
	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/level"
	"github.com/matzehuels/roomgen/pkg/pipeline"
)

// File is the TOML layout of a config file.
type File struct {
	Generator level.Config       `toml:"generator"`
	Run       Run                `toml:"run"`
	Templates []catalog.Template `toml:"template"`

	dir string
}

// Run holds host loop and output settings.
type Run struct {
	Seed       uint64   `toml:"seed,omitempty"`
	MaxResets  int      `toml:"max_resets,omitempty"`
	ResetDelay string   `toml:"reset_delay,omitempty"`
	Formats    []string `toml:"formats,omitempty"`
	Catalog    string   `toml:"catalog,omitempty"`
}

// Load reads and checks a config file. Unknown keys are rejected so typos
// don't silently fall back to defaults.
func Load(path string) (*File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown key %s", path, undec[0])
	}
	if _, err := f.resetDelay(); err != nil {
		return nil, err
	}
	f.dir = filepath.Dir(path)
	return &f, nil
}

func (f *File) resetDelay() (time.Duration, error) {
	if f.Run.ResetDelay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(f.Run.ResetDelay)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid reset_delay %q", f.Run.ResetDelay)
	}
	return d, nil
}

// Apply copies file settings into opts where opts has no value yet.
func (f *File) Apply(opts *pipeline.Options) {
	opts.ApplyLevelConfig(f.Generator)
	if opts.Seed == 0 {
		opts.Seed = f.Run.Seed
	}
	if opts.MaxResets == 0 {
		opts.MaxResets = f.Run.MaxResets
	}
	if opts.ResetDelay == 0 {
		opts.ResetDelay, _ = f.resetDelay()
	}
	if len(opts.Formats) == 0 {
		opts.Formats = f.Run.Formats
	}
	if opts.CatalogPath != "" || len(opts.Templates) > 0 {
		return
	}
	if len(f.Templates) > 0 {
		opts.Templates = f.Templates
	} else {
		opts.CatalogPath = f.catalogPath()
	}
}

// catalogPath resolves run.catalog against the config file's directory.
func (f *File) catalogPath() string {
	if f.Run.Catalog == "" || filepath.IsAbs(f.Run.Catalog) {
		return f.Run.Catalog
	}
	return filepath.Join(f.dir, f.Run.Catalog)
}

// Encode writes f as TOML.
func Encode(w io.Writer, f File) error {
	return toml.NewEncoder(w).Encode(f)
}

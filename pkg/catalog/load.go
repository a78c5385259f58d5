package catalog

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/roomgen/pkg/errors"
)

// File is the TOML layout of a catalog file.
type File struct {
	Templates []Template `toml:"template"`
}

// Decode reads [[template]] tables from r.
func Decode(r io.Reader) ([]Template, error) {
	var f File
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode catalog")
	}
	return f.Templates, nil
}

// LoadFile reads a TOML catalog from path.
func LoadFile(path string) ([]Template, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read catalog %s", path)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "catalog %s: unknown key %s", path, undec[0])
	}
	return f.Templates, nil
}

// Load builds a library from path, or from [Builtin] when path is empty.
func Load(path string) (*Library, error) {
	if path == "" {
		return NewLibrary(Builtin()...)
	}
	ts, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewLibrary(ts...)
}

// Encode writes templates as [[template]] tables.
func Encode(w io.Writer, templates []Template) error {
	return toml.NewEncoder(w).Encode(File{Templates: templates})
}

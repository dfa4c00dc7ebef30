// Package shaders reads shader sources from disk.
package shaders

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ErrEmptyShader is returned for a shader file with no source.
var ErrEmptyShader = errors.New("empty shader")

// Sources maps a shader file name to its source.
type Sources map[string]string

// Load reads names from dir.
func Load(dir string, names ...string) (Sources, error) {
	return LoadFS(os.DirFS(dir), names...)
}

// LoadFS reads names from fsys. The first missing or blank file stops the
// load with an error naming it.
func LoadFS(fsys fs.FS, names ...string) (Sources, error) {
	sources := make(Sources, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read shader %s: %w", name, err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return nil, fmt.Errorf("shader %s: %w", name, ErrEmptyShader)
		}
		sources[name] = string(data)
	}
	return sources, nil
}

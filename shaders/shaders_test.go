package shaders_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/plus3/breakout/shaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"quad.vert":  {Data: []byte("#version 410 core\nvoid main() {}\n")},
		"quad.frag":  {Data: []byte("#version 410 core\nvoid main() {}\n")},
		"blank.frag": {Data: []byte(" \n\t\n")},
	}

	sources, err := shaders.LoadFS(fsys, "quad.vert", "quad.frag")
	require.NoError(t, err)
	assert.Len(t, sources, 2)
	assert.Contains(t, sources["quad.vert"], "#version 410 core")

	_, err = shaders.LoadFS(fsys, "quad.vert", "missing.frag")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "missing.frag")

	_, err = shaders.LoadFS(fsys, "blank.frag")
	assert.ErrorIs(t, err, shaders.ErrEmptyShader)
	assert.Contains(t, err.Error(), "blank.frag")
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quad.kage"), []byte("package main\n"), 0o644))

	sources, err := shaders.Load(dir, "quad.kage")
	require.NoError(t, err)
	assert.Equal(t, "package main\n", sources["quad.kage"])

	_, err = shaders.Load(filepath.Join(dir, "nope"), "quad.kage")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestBundledShadersLoad(t *testing.T) {
	_, err := shaders.Load(filepath.Join("..", "assets", "shaders"),
		"background.kage", "quad.kage", "quad.vert", "quad.frag")
	assert.NoError(t, err)
}

//go:build !integration

package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasExtension(t *testing.T) {
	yamlExts := []string{".yaml", ".yml"}

	tests := []struct {
		name     string
		filename string
		want     bool
	}{
		{"yaml extension", "config.yaml", true},
		{"yml extension", "config.yml", true},
		{"uppercase extension", "CONFIG.YAML", true},
		{"mixed case extension", "config.YmL", true},
		{"txt extension", "config.txt", false},
		{"no extension", "config", false},
		{"yaml in middle of name", "yaml.txt", false},
		{"dotfile", ".yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasExtension(tt.filename, yamlExts))
		})
	}
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))

	for _, name := range []string{"b.yaml", "a.yml", "skip.txt", "nested/c.yaml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x: 1\n"), 0o644))
	}

	files, err := CollectFiles(dir, []string{".yaml", ".yml"})
	require.NoError(t, err, "CollectFiles should succeed on an existing directory")

	require.Len(t, files, 3, "only YAML files should be collected")
	assert.Equal(t, filepath.Join(dir, "a.yml"), files[0], "results should be sorted by path")
	assert.Equal(t, filepath.Join(dir, "b.yaml"), files[1])
	assert.Equal(t, filepath.Join(dir, "nested", "c.yaml"), files[2])
}

func TestCollectFiles_MissingRoot(t *testing.T) {
	_, err := CollectFiles(filepath.Join(t.TempDir(), "missing"), []string{".yaml"})
	require.Error(t, err, "a nonexistent root must be a hard error")
}

func TestWriteTempFile(t *testing.T) {
	path, err := WriteTempFile("cloudlint-*.yaml", "foo: bar\n")
	require.NoError(t, err)
	defer os.Remove(path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "foo: bar\n", string(content))
}

package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.json")

	require.NoError(t, AtomicWriteFile(path, []byte(`{"title":"a"}`), 0o600))
	require.NoError(t, AtomicWriteFile(path, []byte(`{"title":"b"}`), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"b"}`, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestAtomicWriteFile_DirectoryNotExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "site.json")
	assert.Error(t, AtomicWriteFile(path, []byte("{}"), 0o644))
}

func TestAtomicWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	in := map[string]any{"title": "Notes", "srcDir": "src"}

	require.NoError(t, AtomicWriteYAML(path, in))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, yaml.Unmarshal(data, &out))
	assert.Equal(t, "Notes", out["title"])
	assert.Equal(t, byte('\n'), data[len(data)-1])
}

func TestAtomicWriteYAML_Unmarshalable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	err := AtomicWriteYAML(path, map[string]any{"fn": func() {}})
	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAtomicWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantJSON string
		wantErr  bool
	}{
		{
			name:     "map",
			value:    map[string]int{"files": 2},
			wantJSON: "{\n  \"files\": 2\n}\n",
		},
		{
			name:     "slice",
			value:    []string{"index.md", "guide/intro.md"},
			wantJSON: "[\n  \"index.md\",\n  \"guide/intro.md\"\n]\n",
		},
		{
			name:    "unmarshalable channel",
			value:   make(chan int),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "manifest.json")

			err := AtomicWriteJSON(path, tt.value)
			if tt.wantErr {
				require.Error(t, err)
				_, statErr := os.Stat(path)
				assert.True(t, os.IsNotExist(statErr), "file should not exist after marshal error")
				return
			}
			require.NoError(t, err)

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantJSON, string(got))
		})
	}
}

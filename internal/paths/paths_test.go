package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDir_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOCSITE_CONFIG_DIR", dir)
	assert.Equal(t, dir, ConfigDir())
}

func TestConfigDir_Default(t *testing.T) {
	t.Setenv("DOCSITE_CONFIG_DIR", "")
	assert.Equal(t, filepath.Join(ConfigHome(), AppName), ConfigDir())
}

func TestCacheDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOCSITE_CACHE_DIR", dir)
	assert.Equal(t, dir, CacheDir())

	t.Setenv("DOCSITE_CACHE_DIR", "")
	assert.Equal(t, AppName, filepath.Base(CacheDir()))
}

func TestProjectRoot(t *testing.T) {
	tests := []struct {
		siteFile string
		want     string
	}{
		{"/work/blog/docs/.vitepress/site.yaml", "/work/blog"},
		{"/work/blog/site.yaml", "/work/blog"},
		{"site.toml", "."},
	}
	for _, tt := range tests {
		t.Run(tt.siteFile, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), ProjectRoot(filepath.FromSlash(tt.siteFile)))
		})
	}
}

func TestSrcDir(t *testing.T) {
	assert.Equal(t, filepath.Join("/work", "docs"), SrcDir("/work", "docs"))
	assert.Equal(t, "/work", SrcDir("/work", ""))
	assert.Equal(t, "/abs/docs", SrcDir("/work", "/abs/docs/"))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	assert.NoError(t, EnsureDir(dir, 0))
	assert.NoError(t, EnsureDir(dir, 0))
	assert.DirExists(t, dir)
}

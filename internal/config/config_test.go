package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.Equal(t, "HTTP/1.1", cfg.Protocol)
}

func TestCheckRoot(t *testing.T) {
	cfg := Default()
	cfg.Root = t.TempDir()
	assert.NoError(t, cfg.CheckRoot())

	cfg.Root = filepath.Join(cfg.Root, "does-not-exist")
	assert.Error(t, cfg.CheckRoot())

	// A plain file is not a servable root.
	file := filepath.Join(t.TempDir(), "afile")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	cfg.Root = file
	assert.Error(t, cfg.CheckRoot())
}

func TestDiscoverRootEndsWithPages(t *testing.T) {
	root := DiscoverRoot()
	assert.Equal(t, "pages", filepath.Base(root))
}

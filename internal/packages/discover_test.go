package packages

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/balsymbols/symbolindex/internal/config"
	"github.com/balsymbols/symbolindex/internal/engineerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverRejectsRelativeRoot(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	_, err = Discover("relative/path", cfg)
	require.Error(t, err)
	engErr, ok := err.(*engineerr.EngineError)
	require.True(t, ok)
	assert.Equal(t, engineerr.InvalidArgument, engErr.Code)
}

func TestDiscoverNoCacheDirReturnsEmpty(t *testing.T) {
	root := t.TempDir()
	cfg, err := config.Load(root)
	require.NoError(t, err)

	found, err := Discover(root, cfg)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestDiscoverFindsAppFilesUnderCacheDir(t *testing.T) {
	root := t.TempDir()
	cfg, err := config.Load(root)
	require.NoError(t, err)

	cacheDir := filepath.Join(root, cfg.Discovery.CacheDirName)
	require.NoError(t, os.MkdirAll(filepath.Join(cacheDir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "Contoso_App_1.0.0.0.app"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "sub", "Fabrikam_Other_2.0.0.0.app"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "notes.txt"), []byte("x"), 0o644))

	found, err := Discover(root, cfg)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestDiscoverHonorsExcludeGlobs(t *testing.T) {
	root := t.TempDir()
	cfg, err := config.Load(root)
	require.NoError(t, err)
	cfg.Discovery.Exclude = []string{"**/.alpackages/sub/**"}

	cacheDir := filepath.Join(root, cfg.Discovery.CacheDirName)
	require.NoError(t, os.MkdirAll(filepath.Join(cacheDir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "Contoso_App_1.0.0.0.app"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "sub", "Fabrikam_Other_2.0.0.0.app"), []byte("x"), 0o644))

	found, err := Discover(root, cfg)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Contains(t, found[0], "Contoso_App")
}

func TestDiscoverRespectsMaxDepth(t *testing.T) {
	root := t.TempDir()
	cfg, err := config.Load(root)
	require.NoError(t, err)
	cfg.Discovery.MaxDepth = 0

	cacheDir := filepath.Join(root, cfg.Discovery.CacheDirName)
	require.NoError(t, os.MkdirAll(filepath.Join(cacheDir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "sub", "Fabrikam_Other_2.0.0.0.app"), []byte("x"), 0o644))

	found, err := Discover(root, cfg)
	require.NoError(t, err)
	assert.Empty(t, found)
}

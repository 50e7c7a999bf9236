package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigDir(t *testing.T) {
	t.Run("flag wins over env", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/env/config")
		dir, err := ResolveConfigDir("/flag/config")
		require.NoError(t, err)
		assert.Equal(t, "/flag/config", dir)
	})

	t.Run("env wins over default", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/env/config")
		dir, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Equal(t, "/env/config", dir)
	})

	t.Run("relative flag is made absolute", func(t *testing.T) {
		dir, err := ResolveConfigDir("rel/config")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(dir))
	})
}

func TestResolveDataDir(t *testing.T) {
	t.Run("flag wins over config value", func(t *testing.T) {
		dir, err := ResolveDataDir("/flag/data", "/yaml/data")
		require.NoError(t, err)
		assert.Equal(t, "/flag/data", dir)
	})

	t.Run("config value wins over env", func(t *testing.T) {
		t.Setenv(EnvDataDir, "/env/data")
		dir, err := ResolveDataDir("", "/yaml/data")
		require.NoError(t, err)
		assert.Equal(t, "/yaml/data", dir)
	})

	t.Run("env wins over default", func(t *testing.T) {
		t.Setenv(EnvDataDir, "/env/data")
		dir, err := ResolveDataDir("", "")
		require.NoError(t, err)
		assert.Equal(t, "/env/data", dir)
	})

	t.Run("default is CWD-relative", func(t *testing.T) {
		t.Setenv(EnvDataDir, "")
		dir, err := ResolveDataDir("", "")
		require.NoError(t, err)
		assert.Equal(t, DefaultDataDirName, filepath.Base(dir))
		assert.True(t, filepath.IsAbs(dir))
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			App:     AppConfig{Environment: "development"},
			Logger:  LoggerConfig{Level: "info"},
			Data:    DataConfig{BasePath: "/tmp/myscribe"},
			Catalog: CatalogConfig{MaxResults: 5},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("invalid environment", func(t *testing.T) {
		cfg := base()
		cfg.App.Environment = "qa"
		assert.Error(t, cfg.Validate())
	})

	t.Run("invalid log level", func(t *testing.T) {
		cfg := base()
		cfg.Logger.Level = "verbose"
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty data path", func(t *testing.T) {
		cfg := base()
		cfg.Data.BasePath = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive max results", func(t *testing.T) {
		cfg := base()
		cfg.Catalog.MaxResults = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestDerivedPaths(t *testing.T) {
	cfg := &Config{Data: DataConfig{BasePath: "/var/lib/myscribe"}}

	assert.Equal(t, filepath.Join("/var/lib/myscribe", "myscribe.db"), cfg.DatabasePath())
	assert.Equal(t, filepath.Join("/var/lib/myscribe", "cache"), cfg.CachePath())
	assert.Equal(t, filepath.Join("/var/lib/myscribe", "search.bleve"), cfg.SearchIndexPath())
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("MYSCRIBE_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "MYSCRIBE_TEST_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "MYSCRIBE_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "MYSCRIBE_TEST_MISSING", "default"))
}

func TestParseDurationValue(t *testing.T) {
	d, err := parseDurationValue("", "MYSCRIBE_TEST_TIMEOUT", "15s")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, d)

	t.Setenv("MYSCRIBE_TEST_TIMEOUT", "bogus")
	_, err = parseDurationValue("", "MYSCRIBE_TEST_TIMEOUT", "15s")
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment\nMYSCRIBE_ENVFILE_KEY=hello\nQUOTED=\"world\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	t.Setenv("MYSCRIBE_ENVFILE_KEY", "")
	os.Unsetenv("MYSCRIBE_ENVFILE_KEY")
	t.Setenv("QUOTED", "")
	os.Unsetenv("QUOTED")

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "hello", os.Getenv("MYSCRIBE_ENVFILE_KEY"))
	assert.Equal(t, "world", os.Getenv("QUOTED"))
}

package providers

import (
	"os"
	"path/filepath"
	"quranbot/internal/structures"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCredentialEnv(t *testing.T) {
	t.Setenv("API_KEY", "k")
	t.Setenv("API_SECRET", "s")
	t.Setenv("ACCESS_TOKEN", "at")
	t.Setenv("ACCESS_TOKEN_SECRET", "ats")
}

func writeConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConfigProvider_DefaultsWithoutFile(t *testing.T) {
	viper.Reset()
	setCredentialEnv(t)

	conf, err := NewConfigProvider(&structures.CliFlags{
		ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
	})
	require.NoError(t, err)

	assert.Equal(t, "QuranBot", conf.AppName)
	assert.Equal(t, "https://api.twitter.com", conf.Twitter.BaseURL)
	assert.Equal(t, "https://api.alquran.cloud/v1", conf.Quran.BaseURL)
	assert.Equal(t, "en.sahih", conf.Quran.Edition)
	assert.Equal(t, 400, conf.Posting.MonthlyLimit)
	assert.False(t, conf.Posting.HourlyGate)
	assert.Equal(t, time.Hour, conf.Posting.MinInterval)
	assert.Equal(t, "quran_bot_state.json", conf.Persistence.FilePath)
	assert.Equal(t, "info", conf.Logger.Level)
	assert.Equal(t, "k", conf.Twitter.APIKey)
}

func TestConfigProvider_FileValues(t *testing.T) {
	viper.Reset()
	setCredentialEnv(t)

	path := writeConfigFile(t, `
posting:
  monthlyLimit: 120
  hourlyGate: true
  minInterval: 30m
quran:
  edition: en.pickthall
`)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, 120, conf.Posting.MonthlyLimit)
	assert.True(t, conf.Posting.HourlyGate)
	assert.Equal(t, 30*time.Minute, conf.Posting.MinInterval)
	assert.Equal(t, "en.pickthall", conf.Quran.Edition)
}

func TestConfigProvider_EnvOverridesFile(t *testing.T) {
	viper.Reset()
	setCredentialEnv(t)
	t.Setenv("QURANBOT_MONTHLY_LIMIT", "99")
	t.Setenv("QURANBOT_LOG_LEVEL", "warn")

	path := writeConfigFile(t, `
posting:
  monthlyLimit: 120
logger:
  level: debug
`)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, 99, conf.Posting.MonthlyLimit)
	assert.Equal(t, "warn", conf.Logger.Level)
}

func TestConfigProvider_MissingCredentials(t *testing.T) {
	viper.Reset()
	// Empty env vars are treated as unset, shielding the test from
	// credentials present in the outer environment.
	t.Setenv("API_KEY", "")
	t.Setenv("API_SECRET", "")
	t.Setenv("ACCESS_TOKEN", "")
	t.Setenv("ACCESS_TOKEN_SECRET", "")

	_, err := NewConfigProvider(&structures.CliFlags{
		ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
	})
	assert.Error(t, err)
}

func TestConfigProvider_UnreadableFileIsFatal(t *testing.T) {
	viper.Reset()
	setCredentialEnv(t)

	path := writeConfigFile(t, "posting: [not a mapping")

	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}

func TestConfigProvider_FlagsCarriedOver(t *testing.T) {
	viper.Reset()
	setCredentialEnv(t)

	conf, err := NewConfigProvider(&structures.CliFlags{
		ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
		DebugMode:  true,
		Daemon:     true,
		DryRun:     true,
	})
	require.NoError(t, err)

	assert.True(t, conf.Debug)
	assert.True(t, conf.Daemon)
	assert.True(t, conf.DryRun)
}

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{"gitreadme"}, args...)
	t.Cleanup(func() { os.Args = old })
}

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	require.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	require.Equal(t, "gitreadme.db", cfg.DatabaseDSN)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
	require.Equal(t, time.Second, cfg.PollInterval)
	require.Equal(t, 60, cfg.PollMaxAttempts)
	require.Equal(t, 3*time.Second, cfg.LoginRetryDelay)
}

func TestParseEnv_Overlays(t *testing.T) {
	withArgs(t)
	t.Setenv("GITREADME_API_URL", "http://api.example:9000")
	t.Setenv("GITREADME_DB", "other.db")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	require.Equal(t, "http://api.example:9000", cfg.APIBaseURL)
	require.Equal(t, "other.db", cfg.DatabaseDSN)
}

func TestParseFlags_Overrides(t *testing.T) {
	withArgs(t, "-a", "http://flagged:1234", "-i", "2", "-n", "10")

	var cfg Config
	cfg.LoadDefaults()
	parseFlags(&cfg)

	require.Equal(t, "http://flagged:1234", cfg.APIBaseURL)
	require.Equal(t, 2*time.Second, cfg.PollInterval)
	require.Equal(t, 10, cfg.PollMaxAttempts)
}

func TestLoadConfig_FlagsWinOverEnv(t *testing.T) {
	withArgs(t, "-a", "http://from-flag")
	t.Setenv("GITREADME_API_URL", "http://from-env")

	cfg := LoadConfig()
	require.Equal(t, "http://from-flag", cfg.APIBaseURL)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TURING_LLM_PROVIDER", "TURING_LLM_MODEL", "TURING_LLM_API_KEY", "TURING_LLM_BASE_URL",
		"TURING_LLM_TIMEOUT", "TURING_SERVER_ADDR", "TURING_LOG_LEVEL", "GEMINI_API_KEY", "API_KEY",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "secret")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "gemini", cfg.LLM.Provider)
	require.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	require.Equal(t, "secret", cfg.LLM.APIKey)
	require.Zero(t, cfg.LLM.Timeout)
	require.Equal(t, ":8080", cfg.ServerAddr)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRequiresAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	require.Error(t, err)
}

func TestLoadMockNeedsNoKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("TURING_LLM_PROVIDER", "mock")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "mock", cfg.LLM.Model)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("TURING_LLM_PROVIDER", "carrier-pigeon")
	t.Setenv("TURING_LLM_API_KEY", "secret")

	_, err := Load("")
	require.Error(t, err)
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"llm": {"provider": "openai", "api_key": "from-file", "timeout": "30s"},
		"server_addr": ":9090"
	}`), 0o600))
	t.Setenv("TURING_LLM_API_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "openai", cfg.LLM.Provider)
	require.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	require.Equal(t, "from-env", cfg.LLM.APIKey)
	require.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	require.Equal(t, ":9090", cfg.ServerAddr)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("TURING_LLM_PROVIDER", "mock")

	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

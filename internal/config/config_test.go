package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10, cfg.Server.BodyLimitMB)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Empty(t, cfg.LLM.Model, "each backend picks its own default model")
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.True(t, cfg.Artifacts.Enabled)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestFromViper_ProviderKeyFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	v := viper.New()
	setDefaults(v)
	v.Set("llm.provider", "OpenAI")

	cfg := fromViper(v)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Session: SessionConfig{Secret: "s", TTL: time.Hour},
			LLM:     LLMConfig{Provider: "mock"},
		}
	}

	assert.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Session.Secret = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Session.TTL = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.LLM.Provider = "anthropic"
	assert.Error(t, cfg.Validate(), "hosted providers need a key")
	cfg.LLM.APIKey = "key"
	assert.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.LLM.Provider = "ollama"
	assert.NoError(t, cfg.Validate(), "local providers need no key")

	cfg = valid()
	cfg.LLM.Provider = "palm"
	assert.Error(t, cfg.Validate())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("ENV", "")
	yaml := []byte("server:\n  port: 9000\nsession:\n  secret: from-file\nllm:\n  provider: mock\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))
	t.Setenv("REDIS_ADDRESS", "redis:6380")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "from-file", cfg.Session.Secret)
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, "redis:6380", cfg.Redis.Address)
}

func TestLoadCLIConfig_NoSessionNeeded(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", "")
	t.Setenv("LLM_PROVIDER", "mock")
	t.Setenv("SESSION_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)

	cfg, err := LoadCLIConfig()
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.LLM.Provider)
}

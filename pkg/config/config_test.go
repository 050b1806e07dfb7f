package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/flowops/flow-ops-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(contents), 0o600))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FLOW_TOKEN", "")
	t.Setenv("FLOW_API_BASE_URL", "")

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, config.DefaultFlowAPIBaseURL, cfg.Flow.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Flow.Timeout)
	assert.Empty(t, cfg.Flow.Token)
	assert.False(t, cfg.Flow.HasToken())
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.False(t, cfg.Flow.CircuitBreaker.Enabled)
	assert.Equal(t, config.DefaultFlowMaxConnsPerHost, cfg.Flow.MaxConnsPerHost)
	assert.Equal(t, config.DefaultFlowMaxResponseBodySize, cfg.Flow.MaxResponseBodySize)
}

func TestLoad_ClientLimits(t *testing.T) {
	dir := writeConfig(t, `
flow:
  max_conns_per_host: 8
  max_response_body_size: 1024
`)
	t.Setenv("FLOW_TOKEN", "")
	t.Setenv("FLOW_API_BASE_URL", "")

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Flow.MaxConnsPerHost)
	assert.Equal(t, 1024, cfg.Flow.MaxResponseBodySize)

	dir = writeConfig(t, `
flow:
  max_conns_per_host: -1
  max_response_body_size: 0
`)
	cfg, err = config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultFlowMaxConnsPerHost, cfg.Flow.MaxConnsPerHost)
	assert.Equal(t, config.DefaultFlowMaxResponseBodySize, cfg.Flow.MaxResponseBodySize)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 8080
flow:
  base_url: https://file.example.com/api/
  token: file-token
  timeout: 10s
cors:
  allow_origins: ["https://app.example.com"]
`)
	t.Setenv("FLOW_TOKEN", "env-token")
	t.Setenv("FLOW_API_BASE_URL", "")

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Flow.Token)
	assert.True(t, cfg.Flow.HasToken())
	assert.Equal(t, "https://file.example.com/api", cfg.Flow.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, 10*time.Second, cfg.Flow.Timeout)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORS.AllowOrigins)
}

func TestLoad_BaseURLFromEnvironment(t *testing.T) {
	t.Setenv("FLOW_API_BASE_URL", "http://localhost:9999/")
	t.Setenv("FLOW_TOKEN", "secret")

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cfg.Flow.BaseURL)
	assert.Equal(t, "secret", cfg.Flow.Token)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := writeConfig(t, "server: [unterminated")

	_, err := config.Load(dir)
	assert.Error(t, err)
}

func TestBuildUpstreamTLSConfig(t *testing.T) {
	t.Run("defaults yield nil", func(t *testing.T) {
		tlsCfg, err := config.BuildUpstreamTLSConfig(config.TLSConfig{})
		assert.NoError(t, err)
		assert.Nil(t, tlsCfg)
	})

	t.Run("insecure skip verify", func(t *testing.T) {
		tlsCfg, err := config.BuildUpstreamTLSConfig(config.TLSConfig{InsecureSkipVerify: true})
		require.NoError(t, err)
		require.NotNil(t, tlsCfg)
		assert.True(t, tlsCfg.InsecureSkipVerify)
	})

	t.Run("missing CA file", func(t *testing.T) {
		_, err := config.BuildUpstreamTLSConfig(config.TLSConfig{CACert: filepath.Join(t.TempDir(), "missing.pem")})
		assert.Error(t, err)
	})

	t.Run("invalid CA contents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ca.pem")
		require.NoError(t, os.WriteFile(path, []byte("not a certificate"), 0o600))
		_, err := config.BuildUpstreamTLSConfig(config.TLSConfig{CACert: path})
		assert.Error(t, err)
	})
}

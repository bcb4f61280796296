package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.Equal(t, 30, cfg.Scraper.TimeoutSeconds)
	assert.Equal(t, 10, cfg.Search.Num)
	assert.True(t, cfg.Worker.Enabled)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "seo.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
addr = ":8080"
site_url = "https://blog.example.com/"

[llm]
api_key = "from-file"
model = ""

[search]
country = " UK "
cache_ttl_seconds = 600
`), 0o600))

	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("REDIS_ADDR", "localhost:6380")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "https://blog.example.com", cfg.Server.SiteURL)
	assert.Equal(t, "from-env", cfg.LLM.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model, "empty model falls back to default")
	assert.Equal(t, "uk", cfg.Search.Country)
	assert.Equal(t, 600, cfg.Search.CacheTTLSeconds)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERP_API_KEY=dotenv-key\n"), 0o600))
	t.Setenv("SERP_API_KEY", "")
	os.Unsetenv("SERP_API_KEY")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.Search.APIKey)
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\naddr="), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LLM.Temperature = 3
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Search.CacheTTLSeconds = -1
	assert.Error(t, cfg.Validate())
}

func TestSampleConfigParses(t *testing.T) {
	var cfg Config
	require.NoError(t, toml.Unmarshal([]byte(SampleConfig()), &cfg))
	assert.Equal(t, Default(), cfg)
}

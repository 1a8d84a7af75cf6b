package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/vertical-mint/internal/errors"
)

const validAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

// isolate runs Load from an empty directory so no stray .env or config
// file is picked up
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", dir)
	homedir.Reset()
	t.Cleanup(homedir.Reset)
	return dir
}

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("REPLICATE_API_TOKEN", "r8_token")
	t.Setenv("PINATA_API_KEY", "key")
	t.Setenv("PINATA_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	setRequired(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.HTTPAddr)
	assert.Equal(t, ProviderReplicate, cfg.Image.Provider)
	assert.Equal(t, 3, cfg.Image.RetryAttempts)
	assert.Equal(t, time.Second, cfg.Image.RetryDelay)
	assert.Equal(t, "https://mainnet.base.org", cfg.Chain.RPCURL)
	assert.Equal(t, "r8_token", cfg.Replicate.APIToken)
	assert.Equal(t, "key", cfg.Pinata.APIKey)
	assert.Equal(t, "secret", cfg.Pinata.Secret)
	assert.Zero(t, cfg.MaxConcurrentGenerations)
	assert.False(t, cfg.Chain.Enabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	setRequired(t)
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("IMAGE_RETRY_DELAY", "250ms")
	t.Setenv("MAX_CONCURRENT_GENERATIONS", "4")
	t.Setenv("CONTRACT_ADDRESS", validAddress)
	t.Setenv("PRIVATE_KEY", "0xabc")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 250*time.Millisecond, cfg.Image.RetryDelay)
	assert.Equal(t, 4, cfg.MaxConcurrentGenerations)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Chain.Enabled())
}

func TestLoad_EnvFile(t *testing.T) {
	dir := isolate(t)
	for _, key := range []string{"REPLICATE_API_TOKEN", "PINATA_JWT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	env := "REPLICATE_API_TOKEN=from-dotenv\nPINATA_JWT=jwt-from-dotenv\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Replicate.APIToken)
	assert.Equal(t, "jwt-from-dotenv", cfg.Pinata.JWT)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	setRequired(t)

	path := filepath.Join(dir, "minter.yaml")
	raw := []byte("http_addr: \":9000\"\nimage:\n  provider: genai\ngenai:\n  api_key: g-key\n  model: imagen-test\n")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	cfg, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, ProviderGenAI, cfg.Image.Provider)
	assert.Equal(t, "g-key", cfg.GenAI.APIKey)
	assert.Equal(t, "imagen-test", cfg.GenAI.Model)
}

func TestLoad_HomeConfig(t *testing.T) {
	dir := isolate(t)
	setRequired(t)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".vertical"), 0o700))
	raw := []byte("traits_file: /etc/vertical/traits.json\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".vertical", "vertical.yaml"), raw, 0o600))

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "/etc/vertical/traits.json", cfg.TraitsFile)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	isolate(t)
	setRequired(t)

	_, err := Load(LoadOptions{ConfigFile: "/does/not/exist.yaml"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			HTTPAddr:  ":3000",
			Image:     ImageConfig{Provider: ProviderReplicate, RetryAttempts: 3, RetryDelay: time.Second},
			Replicate: ReplicateConfig{APIToken: "t"},
			Pinata:    PinataConfig{JWT: "jwt"},
			Chain:     ChainConfig{RPCURL: "https://mainnet.base.org"},
		}
	}

	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{name: "valid", modify: func(*Config) {}},
		{
			name:   "missing replicate token",
			modify: func(c *Config) { c.Replicate.APIToken = "" },
			want:   "REPLICATE_API_TOKEN is required",
		},
		{
			name:   "genai needs key",
			modify: func(c *Config) { c.Image.Provider = ProviderGenAI },
			want:   "GENAI_API_KEY is required",
		},
		{
			name:   "unknown provider",
			modify: func(c *Config) { c.Image.Provider = "dalle" },
			want:   "Config.Image.Provider failed oneof",
		},
		{
			name:   "pinata key without secret",
			modify: func(c *Config) { c.Pinata = PinataConfig{APIKey: "k"} },
			want:   "PINATA_JWT or PINATA_API_KEY and PINATA_SECRET are required",
		},
		{
			name: "bad contract address",
			modify: func(c *Config) {
				c.Chain.ContractAddress = "0x1234"
				c.Chain.PrivateKey = "abc"
			},
			want: "Config.Chain.ContractAddress failed ethaddr",
		},
		{
			name:   "address without key",
			modify: func(c *Config) { c.Chain.ContractAddress = validAddress },
			want:   "CONTRACT_ADDRESS and PRIVATE_KEY must be set together",
		},
		{
			name:   "zero attempts",
			modify: func(c *Config) { c.Image.RetryAttempts = 0 },
			want:   "Config.Image.RetryAttempts failed gte",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

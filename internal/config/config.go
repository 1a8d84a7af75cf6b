package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/KirkDiggler/vertical-mint/internal/errors"
)

const (
	ProviderReplicate = "replicate"
	ProviderGenAI     = "genai"

	configName = "vertical"
	homeDir    = ".vertical"
)

// Config holds all configuration for the application. Keys map to
// environment variables by upper-casing and replacing dots with
// underscores, e.g. replicate.api_token -> REPLICATE_API_TOKEN.
type Config struct {
	HTTPAddr    string `mapstructure:"http_addr" validate:"required"`
	AdminToken  string `mapstructure:"admin_token"`
	TraitsFile  string `mapstructure:"traits_file"`
	PeriodsFile string `mapstructure:"periods_file"`
	RedisURL    string `mapstructure:"redis_url"`

	MaxConcurrentGenerations int `mapstructure:"max_concurrent_generations" validate:"gte=0"`

	Log       LogConfig       `mapstructure:"log"`
	Image     ImageConfig     `mapstructure:"image"`
	Replicate ReplicateConfig `mapstructure:"replicate"`
	GenAI     GenAIConfig     `mapstructure:"genai"`
	Pinata    PinataConfig    `mapstructure:"pinata"`
	Chain     ChainConfig     `mapstructure:",squash"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=console json"`
	Path   string `mapstructure:"path"`
}

// ImageConfig selects the provider and the retry policy around it
type ImageConfig struct {
	Provider      string        `mapstructure:"provider" validate:"oneof=replicate genai"`
	RetryAttempts int           `mapstructure:"retry_attempts" validate:"gte=1"`
	RetryDelay    time.Duration `mapstructure:"retry_delay" validate:"gte=0"`
}

type ReplicateConfig struct {
	APIToken string `mapstructure:"api_token"`
	BaseURL  string `mapstructure:"base_url" validate:"omitempty,url"`
	Model    string `mapstructure:"model"`
}

type GenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// PinataConfig accepts either a JWT or the key/secret pair
type PinataConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Secret  string `mapstructure:"secret"`
	JWT     string `mapstructure:"jwt"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

// ChainConfig keeps the original flat names: RPC_URL, CONTRACT_ADDRESS, PRIVATE_KEY
type ChainConfig struct {
	RPCURL          string `mapstructure:"rpc_url" validate:"omitempty,url"`
	ContractAddress string `mapstructure:"contract_address" validate:"omitempty,ethaddr"`
	PrivateKey      string `mapstructure:"private_key"`
	ChainID         int64  `mapstructure:"chain_id" validate:"gte=0"`
}

// Enabled reports whether on-chain linking is configured
func (c ChainConfig) Enabled() bool {
	return c.ContractAddress != "" && c.PrivateKey != ""
}

// LoadOptions points Load at explicit files; empty values use the defaults
type LoadOptions struct {
	ConfigFile string
	EnvFile    string
}

var defaults = map[string]any{
	"http_addr":                  ":3000",
	"admin_token":                "",
	"traits_file":                "",
	"periods_file":               "",
	"redis_url":                  "",
	"max_concurrent_generations": 0,
	"log.level":                  "info",
	"log.format":                 "console",
	"log.path":                   "",
	"image.provider":             ProviderReplicate,
	"image.retry_attempts":       3,
	"image.retry_delay":          time.Second,
	"replicate.api_token":        "",
	"replicate.base_url":         "",
	"replicate.model":            "",
	"genai.api_key":              "",
	"genai.model":                "",
	"pinata.api_key":             "",
	"pinata.secret":              "",
	"pinata.jwt":                 "",
	"pinata.base_url":            "",
	"rpc_url":                    "https://mainnet.base.org",
	"contract_address":           "",
	"private_key":                "",
	"chain_id":                   0,
}

// Load reads .env, an optional config file and the environment, in
// increasing priority, then validates the result
func Load(opts LoadOptions) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, homeDir))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvFile(path string) error {
	if path == "" {
		path = ".env"
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "failed to load env file %s", path)
	}
	return nil
}

// Validate checks field formats and the credentials the selected
// providers need
func (c *Config) Validate() error {
	var problems []string

	if err := newValidator().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return errors.Wrap(err, "failed to validate config")
		}
		for _, fe := range fieldErrs {
			problems = append(problems, fe.Namespace()+" failed "+fe.Tag())
		}
	}

	switch c.Image.Provider {
	case ProviderReplicate:
		if c.Replicate.APIToken == "" {
			problems = append(problems, "REPLICATE_API_TOKEN is required")
		}
	case ProviderGenAI:
		if c.GenAI.APIKey == "" {
			problems = append(problems, "GENAI_API_KEY is required")
		}
	}

	if c.Pinata.JWT == "" && (c.Pinata.APIKey == "" || c.Pinata.Secret == "") {
		problems = append(problems, "PINATA_JWT or PINATA_API_KEY and PINATA_SECRET are required")
	}

	if (c.Chain.ContractAddress == "") != (c.Chain.PrivateKey == "") {
		problems = append(problems, "CONTRACT_ADDRESS and PRIVATE_KEY must be set together")
	}

	if len(problems) > 0 {
		return errors.Validationf("invalid configuration: %s", strings.Join(problems, "; ")).
			WithMeta("problems", problems)
	}
	return nil
}

func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("ethaddr", func(fl validator.FieldLevel) bool {
		return common.IsHexAddress(fl.Field().String())
	})
	return validate
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/kviz/internal/llm"
)

// MaxQuizCount caps the configured quiz length.
const MaxQuizCount = 50

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	// Env set to "production" switches the logger to JSON output.
	Env string `mapstructure:"env"`

	// Bank is the path to the question bank document.
	Bank string `mapstructure:"bank"`

	// DB is the SQLite result store. Empty means the XDG default.
	DB string `mapstructure:"db"`

	Quiz  Quiz  `mapstructure:"quiz"`
	Serve Serve `mapstructure:"serve"`
	LLM   LLM   `mapstructure:"llm"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// Quiz holds quiz defaults.
type Quiz struct {
	Count int `mapstructure:"count"` // questions per quiz
}

// Serve holds HTTP API settings.
type Serve struct {
	Addr            string        `mapstructure:"addr"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LLM holds provider selection and credentials.
type LLM struct {
	Provider   string        `mapstructure:"provider"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Anthropic  Credentials   `mapstructure:"anthropic"`
	OpenAI     Credentials   `mapstructure:"openai"`
	Gemini     Credentials   `mapstructure:"gemini"`
	OpenRouter Credentials   `mapstructure:"openrouter"`
}

// Credentials configures a single LLM provider.
type Credentials struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Load reads configuration from an optional YAML file, a .env file in the
// working directory, and KVIZ_* environment variables, in increasing
// priority. An empty path searches $XDG_CONFIG_HOME/kviz/config.yaml; a
// missing file there is not an error, but an explicit path must exist.
func Load(path string) (*Config, error) {
	// Load .env file if it exists.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("KVIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Shorter names for the common secrets and settings.
	_ = v.BindEnv("serve.allowed_origins", "KVIZ_ALLOWED_ORIGINS")
	_ = v.BindEnv("llm.anthropic.api_key", "KVIZ_ANTHROPIC_API_KEY")
	_ = v.BindEnv("llm.openai.api_key", "KVIZ_OPENAI_API_KEY")
	_ = v.BindEnv("llm.gemini.api_key", "KVIZ_GEMINI_API_KEY")
	_ = v.BindEnv("llm.openrouter.api_key", "KVIZ_OPENROUTER_API_KEY")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var fileLookupErr viper.ConfigFileNotFoundError
			if !errors.As(err, &fileLookupErr) {
				return nil, fmt.Errorf("error loading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.normalize()

	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	cfg.normalize()
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("bank", "questions.json")
	v.SetDefault("db", "")
	v.SetDefault("quiz.count", 5)
	v.SetDefault("serve.addr", "127.0.0.1:8080")
	v.SetDefault("serve.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("serve.shutdown_timeout", "10s")

	defaults := llm.DefaultConfig()
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.timeout", defaults.Timeout.String())
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", defaults.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", defaults.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", defaults.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", defaults.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
}

func (c *Config) normalize() {
	if c.Quiz.Count < 1 {
		c.Quiz.Count = 1
	}
	if c.Quiz.Count > MaxQuizCount {
		c.Quiz.Count = MaxQuizCount
	}
	origins := c.Serve.AllowedOrigins[:0]
	for _, o := range c.Serve.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.Serve.AllowedOrigins = origins
}

// LLMConfig converts the LLM section into provider configuration. When no
// provider is configured it falls back to the standard API key variables
// (GEMINI_API_KEY, OPENAI_API_KEY, ...). The boolean is false when no
// provider could be determined.
func (c *Config) LLMConfig() (llm.Config, bool) {
	if c.LLM.Provider == "" {
		if found := c.configuredProvider(); found != "" {
			c.LLM.Provider = found
		} else {
			cfg, ok := llm.DiscoverConfig()
			if ok && c.LLM.Timeout > 0 {
				cfg.Timeout = c.LLM.Timeout
			}
			return cfg, ok
		}
	}

	cfg := llm.DefaultConfig()
	cfg.Provider = c.LLM.Provider
	if c.LLM.Timeout > 0 {
		cfg.Timeout = c.LLM.Timeout
	}
	cfg.Anthropic.APIKey = c.LLM.Anthropic.APIKey
	cfg.Anthropic.Model = orDefault(c.LLM.Anthropic.Model, cfg.Anthropic.Model)
	cfg.OpenAI.APIKey = c.LLM.OpenAI.APIKey
	cfg.OpenAI.Model = orDefault(c.LLM.OpenAI.Model, cfg.OpenAI.Model)
	cfg.OpenAI.BaseURL = c.LLM.OpenAI.BaseURL
	cfg.Gemini.APIKey = c.LLM.Gemini.APIKey
	cfg.Gemini.Model = orDefault(c.LLM.Gemini.Model, cfg.Gemini.Model)
	cfg.OpenRouter.APIKey = c.LLM.OpenRouter.APIKey
	cfg.OpenRouter.Model = orDefault(c.LLM.OpenRouter.Model, cfg.OpenRouter.Model)
	cfg.OpenRouter.BaseURL = orDefault(c.LLM.OpenRouter.BaseURL, cfg.OpenRouter.BaseURL)
	return cfg, true
}

// configuredProvider picks the first provider with a KVIZ_* key set.
func (c *Config) configuredProvider() string {
	switch {
	case c.LLM.Anthropic.APIKey != "":
		return "anthropic"
	case c.LLM.OpenAI.APIKey != "":
		return "openai"
	case c.LLM.Gemini.APIKey != "":
		return "gemini"
	case c.LLM.OpenRouter.APIKey != "":
		return "openrouter"
	}
	return ""
}

// DefaultPath returns $XDG_CONFIG_HOME/kviz/config.yaml.
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "kviz"), nil
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

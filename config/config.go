package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	LLM    LLMConfig
	Search SearchConfig
	Log    LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MongoConfig holds catalog store configuration
type MongoConfig struct {
	URI        string        `mapstructure:"uri"`
	Database   string        `mapstructure:"database"`
	Collection string        `mapstructure:"collection"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// LLMConfig holds model backend configuration
type LLMConfig struct {
	Provider          string        `mapstructure:"provider"` // "openai", "groq", "anthropic" or "ollama"
	APIKey            string        `mapstructure:"api_key"`
	Model             string        `mapstructure:"model"`
	BaseURL           string        `mapstructure:"base_url"`
	SystemPrompt      string        `mapstructure:"system_prompt"` // sent as a system message when set
	Temperature       float64       `mapstructure:"temperature"`
	MaxTokens         int           `mapstructure:"max_tokens"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
}

// SearchConfig holds lookup behavior
type SearchConfig struct {
	Mode        string `mapstructure:"mode"` // "filter", "keywords" or "keyword"
	ResultLimit int    `mapstructure:"result_limit"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

var (
	validProviders = []string{"openai", "groq", "anthropic", "ollama"}
	validModes     = []string{"filter", "keywords", "keyword"}
)

// Load loads configuration from a .env file, config files and environment variables
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shoplens/")

	// SHOPLENS_MONGO_URI -> mongo.uri
	v.SetEnvPrefix("SHOPLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env when present. Existing variables are never overridden.
func loadEnvFile() error {
	err := godotenv.Load()
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:8501"})

	v.SetDefault("mongo.collection", "products")
	v.SetDefault("mongo.timeout", "10s")

	v.SetDefault("llm.provider", "groq")
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("llm.max_tokens", 1024)
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("llm.requests_per_second", 0.0)

	v.SetDefault("search.mode", "filter")
	v.SetDefault("search.result_limit", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// bindEnv binds keys without defaults plus the unprefixed variable names the
// deployment .env files already use.
func bindEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"mongo.uri":         {"SHOPLENS_MONGO_URI", "MONGO_URI"},
		"mongo.database":    {"SHOPLENS_MONGO_DATABASE", "DATABASE_NAME"},
		"mongo.collection":  {"SHOPLENS_MONGO_COLLECTION", "COLLECTION_NAME"},
		"llm.api_key":       {"SHOPLENS_LLM_API_KEY", "GROQ_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY"},
		"llm.model":         {"SHOPLENS_LLM_MODEL"},
		"llm.base_url":      {"SHOPLENS_LLM_BASE_URL"},
		"llm.system_prompt": {"SHOPLENS_LLM_SYSTEM_PROMPT"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return err
		}
	}
	return nil
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Mongo.URI == "" {
		return fmt.Errorf("MongoDB URI is required (set SHOPLENS_MONGO_URI or MONGO_URI)")
	}
	if config.Mongo.Database == "" {
		return fmt.Errorf("MongoDB database is required (set SHOPLENS_MONGO_DATABASE or DATABASE_NAME)")
	}
	if config.Mongo.Collection == "" {
		return fmt.Errorf("MongoDB collection must not be empty")
	}

	if !contains(validProviders, config.LLM.Provider) {
		return fmt.Errorf("llm provider must be one of %s, got: %s",
			strings.Join(validProviders, ", "), config.LLM.Provider)
	}
	if config.LLM.Provider != "ollama" && config.LLM.APIKey == "" {
		return fmt.Errorf("llm API key is required for provider %s (set SHOPLENS_LLM_API_KEY)", config.LLM.Provider)
	}

	if !contains(validModes, config.Search.Mode) {
		return fmt.Errorf("search mode must be one of %s, got: %s",
			strings.Join(validModes, ", "), config.Search.Mode)
	}
	if config.Search.ResultLimit <= 0 {
		return fmt.Errorf("search result limit must be positive, got: %d", config.Search.ResultLimit)
	}

	return nil
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

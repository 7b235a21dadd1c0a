package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	PostgresURL string

	GenerationProvider    string
	GeminiAPIKey          string
	GeminiModel           string
	OpenAIAPIKey          string
	OpenAIModel           string
	GenerationTemperature float32
	MaxGenerationAttempts int

	CustomSearchKey string
	CustomSearchCX  string

	CORSAllowOrigins   []string
	DestinationCountry string
	Currency           string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("GENERATION_PROVIDER", "gemini")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("GENERATION_TEMPERATURE", 0.4)
	v.SetDefault("GENERATION_MAX_ATTEMPTS", 3)
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:5173")
	v.SetDefault("DESTINATION_COUNTRY", "India")
	v.SetDefault("CURRENCY", "INR")
}

func fromViper(v *viper.Viper) *Config {
	var origins []string
	for _, o := range strings.Split(v.GetString("CORS_ALLOW_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		Port:                  v.GetString("PORT"),
		LogLevel:              strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:             strings.ToLower(v.GetString("LOG_FORMAT")),
		PostgresURL:           v.GetString("POSTGRES_URL"),
		GenerationProvider:    strings.ToLower(v.GetString("GENERATION_PROVIDER")),
		GeminiAPIKey:          v.GetString("GEMINI_API_KEY"),
		GeminiModel:           v.GetString("GEMINI_MODEL"),
		OpenAIAPIKey:          v.GetString("OPENAI_API_KEY"),
		OpenAIModel:           v.GetString("OPENAI_MODEL"),
		GenerationTemperature: float32(v.GetFloat64("GENERATION_TEMPERATURE")),
		MaxGenerationAttempts: v.GetInt("GENERATION_MAX_ATTEMPTS"),
		CustomSearchKey:       v.GetString("GOOGLE_CUSTOM_SEARCH_KEY"),
		CustomSearchCX:        v.GetString("GOOGLE_CUSTOM_SEARCH_CX"),
		CORSAllowOrigins:      origins,
		DestinationCountry:    v.GetString("DESTINATION_COUNTRY"),
		Currency:              v.GetString("CURRENCY"),
	}
}

func (c *Config) Validate() error {
	switch c.GenerationProvider {
	case "gemini":
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required when using the gemini provider")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required when using the openai provider")
		}
	default:
		return fmt.Errorf("unsupported generation provider %q, use 'gemini' or 'openai'", c.GenerationProvider)
	}
	if c.MaxGenerationAttempts < 1 {
		return fmt.Errorf("GENERATION_MAX_ATTEMPTS must be at least 1, got %d", c.MaxGenerationAttempts)
	}
	return nil
}

// ImageSearchEnabled reports whether custom search credentials are present.
func (c *Config) ImageSearchEnabled() bool {
	return c.CustomSearchKey != "" && c.CustomSearchCX != ""
}

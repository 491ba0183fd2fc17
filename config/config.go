package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fakecheckapi/models"
	"fakecheckapi/services"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	LLM      LLMConfig
	Analysis AnalysisConfig
}

type ServerConfig struct {
	Port        string
	Environment string
	SentryDSN   string
	BodyLimit   string
}

type LLMConfig struct {
	Provider services.LLMProvider
	Timeout  time.Duration
	Azure    services.AzureOpenAIConfig
	Gemini   services.GeminiConfig
}

type AnalysisConfig struct {
	DefaultCategory       string
	RequireEstimatedBrand bool
	// CacheTTL of zero (the default) disables the result cache.
	CacheTTL time.Duration
}

func (c *Config) IsLocal() bool {
	return c.Server.Environment == "local"
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:        services.GetEnv("PORT", "8083"),
			Environment: services.GetEnv("ENV", "local"),
			SentryDSN:   services.GetEnv("SENTRY_DSN", ""),
			BodyLimit:   services.GetEnv("BODY_LIMIT", "20M"),
		},
		LLM: LLMConfig{
			Provider: services.LLMProvider(services.GetEnv("LLM_PROVIDER", string(services.ProviderAzureOpenAI))),
			Azure: services.AzureOpenAIConfig{
				Endpoint:   services.GetEnv("AZURE_OPENAI_ENDPOINT", ""),
				APIKey:     services.GetEnv("OPENAI_APIKEY", ""),
				APIVersion: services.GetEnv("AZURE_OPENAI_API_VERSION", "2024-12-01-preview"),
				Deployment: services.GetEnv("AZURE_OPENAI_DEPLOYMENT", "gpt-4o"),
			},
			Gemini: services.GeminiConfig{
				APIKey: services.GetEnv("GOOGLE_API_KEY", ""),
				Model:  services.GetEnv("GEMINI_MODEL", services.Flash25.String()),
			},
		},
		Analysis: AnalysisConfig{
			DefaultCategory: services.GetEnv("DEFAULT_CATEGORY", models.DefaultCategory),
		},
	}

	var err error
	if cfg.LLM.Timeout, err = time.ParseDuration(services.GetEnv("LLM_TIMEOUT", "60s")); err != nil {
		return nil, fmt.Errorf("invalid LLM_TIMEOUT: %w", err)
	}
	if cfg.Analysis.CacheTTL, err = time.ParseDuration(services.GetEnv("ANALYSIS_CACHE_TTL", "0")); err != nil {
		return nil, fmt.Errorf("invalid ANALYSIS_CACHE_TTL: %w", err)
	}
	if cfg.Analysis.RequireEstimatedBrand, err = strconv.ParseBool(services.GetEnv("REQUIRE_ESTIMATED_BRAND", "false")); err != nil {
		return nil, fmt.Errorf("invalid REQUIRE_ESTIMATED_BRAND: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on settings the selected provider cannot run without.
func (c *Config) Validate() error {
	var errs []error

	switch c.LLM.Provider {
	case services.ProviderAzureOpenAI:
		if c.LLM.Azure.Endpoint == "" {
			errs = append(errs, errors.New("AZURE_OPENAI_ENDPOINT is required"))
		}
		if c.LLM.Azure.APIKey == "" {
			errs = append(errs, errors.New("OPENAI_APIKEY is required"))
		}
		if c.LLM.Azure.Deployment == "" {
			errs = append(errs, errors.New("AZURE_OPENAI_DEPLOYMENT is required"))
		}
	case services.ProviderGemini:
		if c.LLM.Gemini.APIKey == "" {
			errs = append(errs, errors.New("GOOGLE_API_KEY is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("LLM_PROVIDER must be azure or gemini (got: %s)", c.LLM.Provider))
	}
	if c.LLM.Timeout <= 0 {
		errs = append(errs, errors.New("LLM_TIMEOUT must be positive"))
	}
	if c.Analysis.CacheTTL < 0 {
		errs = append(errs, errors.New("ANALYSIS_CACHE_TTL must not be negative"))
	}
	if strings.TrimSpace(c.Analysis.DefaultCategory) == "" || !models.ValidateCategoryRaw(c.Analysis.DefaultCategory) {
		errs = append(errs, fmt.Errorf("DEFAULT_CATEGORY is not a valid category: %q", c.Analysis.DefaultCategory))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}
	return nil
}

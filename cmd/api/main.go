package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fakecheckapi/config"
	"fakecheckapi/controllers"
	"fakecheckapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

func newVisionProvider(ctx context.Context, cfg *config.Config) (services.VisionProvider, error) {
	if cfg.LLM.Provider == services.ProviderGemini {
		return services.NewGeminiProvider(ctx, cfg.LLM.Gemini)
	}
	return services.NewAzureOpenAIProvider(cfg.LLM.Azure), nil
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.IsLocal() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if cfg.Server.SentryDSN != "" {
		err = sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Server.SentryDSN,
			Environment:      cfg.Server.Environment,
			Release:          "fakecheckapi@1.0.0",
			TracesSampleRate: 1.0,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("sentry.Init failed")
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := newVisionProvider(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize vision provider")
	}

	var cache services.AnalysisCacheProvider
	if cfg.Analysis.CacheTTL > 0 {
		analysisCache, err := services.NewAnalysisCacheService(cfg.Analysis.CacheTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize analysis cache")
		}
		cache = analysisCache
	}

	analyzer := services.NewAuthenticityAnalyzer(provider, cache, services.AnalyzerConfig{
		DefaultCategory:       cfg.Analysis.DefaultCategory,
		Timeout:               cfg.LLM.Timeout,
		RequireEstimatedBrand: cfg.Analysis.RequireEstimatedBrand,
	})
	e := controllers.SetupServer(cfg, provider, analyzer)

	go func() {
		log.Info().
			Str("port", cfg.Server.Port).
			Str("provider", string(provider.Name())).
			Str("model", provider.Model()).
			Msg("starting server")
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

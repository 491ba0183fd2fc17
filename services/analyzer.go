package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fakecheckapi/models"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"
)

type AnalyzerConfig struct {
	DefaultCategory       string
	Timeout               time.Duration
	RequireEstimatedBrand bool
}

type AuthenticityAnalyzerProvider interface {
	Analyze(ctx context.Context, req models.ObjectAnalysisIn) (*models.AnalysisResult, error)
}

// AuthenticityAnalyzer turns one request into one remote call and a
// validated assessment. It holds no per-request state.
type AuthenticityAnalyzer struct {
	provider VisionProvider
	cache    AnalysisCacheProvider
	cfg      AnalyzerConfig
}

// NewAuthenticityAnalyzer builds the analyzer. A nil cache disables caching.
func NewAuthenticityAnalyzer(provider VisionProvider, cache AnalysisCacheProvider, cfg AnalyzerConfig) *AuthenticityAnalyzer {
	if cfg.DefaultCategory == "" {
		cfg.DefaultCategory = models.DefaultCategory
	}
	return &AuthenticityAnalyzer{provider: provider, cache: cache, cfg: cfg}
}

func (a *AuthenticityAnalyzer) Analyze(ctx context.Context, req models.ObjectAnalysisIn) (*models.AnalysisResult, error) {
	if len(req.Images) == 0 {
		return nil, ErrNoImages
	}
	category := req.Category
	if strings.TrimSpace(category) == "" {
		category = a.cfg.DefaultCategory
	}
	count := models.PhotoCountOf(len(req.Images))

	prompt, err := BuildPrompt(category, req.Brand, len(req.Images))
	if err != nil {
		return nil, err
	}

	var cacheKey string
	if a.cache != nil {
		cacheKey = AnalysisCacheKey(prompt, req.Images)
		if cached, ok := a.cache.Get(ctx, cacheKey); ok {
			log.Debug().Str("photo_count", count.String()).Msg("analysis served from cache")
			return cached, nil
		}
	}
	images, err := DecodeImages(req.Images)
	if err != nil {
		return nil, fmt.Errorf("failed to decode images: %w", err)
	}

	callCtx := ctx
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}
	started := time.Now()
	resp, err := a.provider.Complete(callCtx, VisionRequest{Prompt: prompt, Images: images})
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s: %v", ErrRemoteCallTimeout, a.cfg.Timeout, err)
		}
		callErr := &RemoteCallError{Provider: string(a.provider.Name()), Err: err}
		a.report(callErr, count, "")
		return nil, callErr
	}
	log.Info().
		Str("provider", string(a.provider.Name())).
		Str("model", resp.Model).
		Str("photo_count", count.String()).
		Int64("total_tokens", resp.TotalTokenCount).
		Dur("elapsed", time.Since(started)).
		Msg("remote analysis completed")

	result, err := ParseAnalysisResult(CleanAIResponseText(resp.Response), count, a.cfg.RequireEstimatedBrand)
	if err != nil {
		a.report(err, count, resp.Response)
		return nil, err
	}

	if a.cache != nil {
		a.cache.Set(ctx, cacheKey, result)
	}
	return result, nil
}

func failureType(err error) string {
	var malformed *MalformedResponseError
	var missing *MissingFieldError
	var invalid *InvalidFieldError
	var remote *RemoteCallError
	switch {
	case errors.As(err, &malformed):
		return "malformed_response"
	case errors.As(err, &missing):
		return "missing_field"
	case errors.As(err, &invalid):
		return "invalid_field"
	case errors.As(err, &remote) && remote.IsTimeout():
		return "remote_timeout"
	case errors.As(err, &remote):
		return "remote_error"
	default:
		return "internal"
	}
}

func (a *AuthenticityAnalyzer) report(err error, count models.PhotoCount, raw string) {
	kind := failureType(err)
	event := log.Error().Err(err).
		Str("failure_type", kind).
		Str("provider", string(a.provider.Name())).
		Str("photo_count", count.String())
	if raw != "" {
		event = event.Str("raw", raw)
	}
	event.Msg("analysis failed")

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("failure_type", kind)
		scope.SetTag("photo_count", count.String())
		scope.SetTag("provider", string(a.provider.Name()))
		if raw != "" {
			scope.SetExtra("raw_response", raw)
		}
		sentry.CaptureException(err)
	})
}

package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"fakecheckapi/models"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
	"github.com/rs/zerolog/log"
)

// Max number of cached results; every entry costs 1.
const analysisCacheMaxEntries = 10_000

type AnalysisCacheProvider interface {
	Get(ctx context.Context, key string) (*models.AnalysisResult, bool)
	Set(ctx context.Context, key string, result *models.AnalysisResult)
}

// AnalysisCacheService keeps validated results in memory so that a client
// resubmitting the same photos does not pay for a second remote call.
type AnalysisCacheService struct {
	cache  *cache.Cache[*models.AnalysisResult]
	client *ristretto.Cache
	ttl    time.Duration
}

func NewAnalysisCacheService(ttl time.Duration) (*AnalysisCacheService, error) {
	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: analysisCacheMaxEntries * 10,
		MaxCost:     analysisCacheMaxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	ristrettoStore := ristretto_store.NewRistretto(ristrettoCache)
	return &AnalysisCacheService{
		cache:  cache.New[*models.AnalysisResult](ristrettoStore),
		client: ristrettoCache,
		ttl:    ttl,
	}, nil
}

// AnalysisCacheKey hashes exactly what the model is sent: the rendered
// prompt and the photos in order.
func AnalysisCacheKey(prompt string, images []string) string {
	h := sha256.New()
	writeField := func(s string) {
		fmt.Fprintf(h, "%d:%s|", len(s), s)
	}
	writeField(prompt)
	for _, img := range images {
		writeField(img)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (s *AnalysisCacheService) Get(ctx context.Context, key string) (*models.AnalysisResult, bool) {
	result, err := s.cache.Get(ctx, key)
	if err != nil || result == nil {
		return nil, false
	}
	return result.Clone(), true
}

func (s *AnalysisCacheService) Set(ctx context.Context, key string, result *models.AnalysisResult) {
	err := s.cache.Set(ctx, key, result.Clone(), store.WithExpiration(s.ttl), store.WithCost(1))
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache analysis result")
		return
	}
	// ristretto applies writes asynchronously
	s.client.Wait()
}

package engine

import (
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/puckcast/internal/metrics"
	"github.com/yourusername/puckcast/internal/models"
)

// CacheKey identifies one cached prediction.
type CacheKey struct {
	AwayTeam string
	HomeTeam string
	GameDate time.Time
}

// String returns string representation of the cache key
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s:%s", k.AwayTeam, k.HomeTeam, k.GameDate.Format("2006-01-02"))
}

// PredictionCache provides in-memory TTL caching for prediction results so
// repeated requests for the same matchup do not rerun the Monte Carlo
// estimator.
type PredictionCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// NewPredictionCache creates a new prediction cache
func NewPredictionCache(ttl time.Duration, maxSize int) *PredictionCache {
	return &PredictionCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached prediction, nil on miss.
func (pc *PredictionCache) Get(key CacheKey) *models.PredictionResult {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if cached, found := pc.cache.Get(key.String()); found {
		if result, ok := cached.(*models.PredictionResult); ok {
			pc.hitCount++
			pc.updateMetrics()
			return result
		}
	}

	pc.missCount++
	pc.updateMetrics()
	return nil
}

// Set stores a prediction in the cache.
func (pc *PredictionCache) Set(key CacheKey, result *models.PredictionResult) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.cache.ItemCount() >= pc.maxSize {
		pc.cache.DeleteExpired()
	}
	pc.cache.Set(key.String(), result, pc.ttl)
}

// Flush drops every cached prediction; called after model updates so stale
// probabilities are not served.
func (pc *PredictionCache) Flush() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.cache.Flush()
}

// Stats returns hit and miss counts.
func (pc *PredictionCache) Stats() (hits, misses uint64) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.hitCount, pc.missCount
}

func (pc *PredictionCache) updateMetrics() {
	metrics.CacheHits.Set(float64(pc.hitCount))
	metrics.CacheMisses.Set(float64(pc.missCount))
}

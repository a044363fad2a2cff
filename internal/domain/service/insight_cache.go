package service

import "context"

// Cache keys for the insight results.
const (
	CacheKeyDemandForecasts    = "insight:forecast"
	CacheKeyPricingSuggestions = "insight:pricing"
	CacheKeyReorderSuggestions = "insight:reorder"
)

// InsightCache caches computed insight results. Both operations are
// best-effort: a miss or a failure only costs a recomputation.
type InsightCache interface {
	// Get loads a cached value into dest, reporting whether it was present.
	Get(ctx context.Context, key string, dest any) bool

	// Set stores a value under the key.
	Set(ctx context.Context, key string, value any)
}

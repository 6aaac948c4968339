package cache

import (
	"context"
	"time"
)

// Store is the key-value cache the analysis service writes results through.
// Implementations must treat a missing key as (value="", ok=false), never an
// error, so callers can fall through to recomputation.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, expiration time.Duration)
	Delete(ctx context.Context, key string)
}

package cache

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/metrics"
)

// Accessor wraps a Store with the read-through / write-invalidate
// discipline shared by every entity service. Cache failures are always
// recovered here: a broken cache degrades every read to a store fetch and
// never fails a write.
type Accessor struct {
	store Store
	ttl   time.Duration
	log   zerolog.Logger
}

func NewAccessor(store Store, ttl time.Duration, log zerolog.Logger) *Accessor {
	return &Accessor{store: store, ttl: ttl, log: log}
}

// GetOrLoad returns the cached value under key, or loads it from the
// authoritative store and caches the result.
//
// A cached payload that fails to deserialize is deleted and reloaded, so a
// schema change or corruption heals itself on the next read. The loader's
// error is the only error that propagates; every cache-side failure is
// logged and treated as a miss.
func GetOrLoad[T any](ctx context.Context, a *Accessor, key string, loader func(context.Context) (T, error)) (T, error) {
	var zero T

	exists, err := a.store.Exists(ctx, key)
	if err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("cache exists check failed")
	}
	if exists {
		raw, ok, err := a.store.Get(ctx, key)
		if err != nil {
			a.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		if ok && raw != "" {
			var cached T
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				metrics.CacheHits.WithLabelValues(keyLabel(key)).Inc()
				return cached, nil
			}
			a.log.Warn().Str("key", key).Msg("cached payload failed to deserialize, deleting key")
			if err := a.store.Delete(ctx, key); err != nil {
				a.log.Warn().Err(err).Str("key", key).Msg("delete of corrupt cache entry failed")
			}
		}
	}

	metrics.CacheMisses.WithLabelValues(keyLabel(key)).Inc()
	loaded, err := loader(ctx)
	if err != nil {
		return zero, err
	}

	if !isEmpty(loaded) {
		data, err := json.Marshal(loaded)
		if err != nil {
			a.log.Error().Err(err).Str("key", key).Msg("cache serialization failed, value not cached")
		} else if err := a.store.Set(ctx, key, string(data), a.ttl); err != nil {
			a.log.Error().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	return loaded, nil
}

// Invalidate deletes the entry under key. Absent keys and store failures
// are both fine: the write path that triggered the invalidation must never
// fail because of the cache.
func (a *Accessor) Invalidate(ctx context.Context, key string) {
	metrics.CacheInvalidations.WithLabelValues(keyLabel(key)).Inc()
	if err := a.store.Delete(ctx, key); err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("cache invalidation failed")
	}
}

// keyLabel collapses id-suffixed keys ("drug:17") to their prefix so
// metric cardinality stays bounded.
func keyLabel(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}

// isEmpty reports whether v is nil or an empty slice/map. Empty results
// are returned to the caller but never cached.
func isEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	case reflect.Slice, reflect.Map:
		return rv.IsNil() || rv.Len() == 0
	}
	return false
}

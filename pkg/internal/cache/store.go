// Package cache keeps a process-local ristretto store for hot lookups.
// Values are serialized with jsoniter so cached structs stay comparable
// across restarts of the same binary version.
package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
	jsoniter "github.com/json-iterator/go"
)

var S *ristretto_store.RistrettoStore

func NewStore() error {
	storage, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 27,
		BufferItems: 64,
	})
	if err != nil {
		return err
	}

	S = ristretto_store.NewRistretto(storage)
	return nil
}

// GetJSON loads a cached value into out. A miss, a nil store, or a decode
// failure all report false.
func GetJSON(ctx context.Context, key string, out any) bool {
	if S == nil {
		return false
	}
	manager := cache.New[any](S)
	raw, err := manager.Get(ctx, key)
	if err != nil {
		return false
	}
	data, ok := raw.([]byte)
	if !ok {
		return false
	}
	return jsoniter.Unmarshal(data, out) == nil
}

func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if S == nil {
		return
	}
	data, err := jsoniter.Marshal(value)
	if err != nil {
		return
	}
	manager := cache.New[any](S)
	_ = manager.Set(ctx, key, data, store.WithExpiration(ttl), store.WithCost(int64(len(data))))
}

func Forget(ctx context.Context, key string) {
	if S == nil {
		return
	}
	manager := cache.New[any](S)
	_ = manager.Delete(ctx, key)
}

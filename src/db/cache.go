package db

import (
	"fmt"
	"sync"

	"github.com/dgraph-io/ristretto"
)

const (
	TransactionCacheName = "transactions"
	AccountCacheName     = "accounts"
)

// Cache keys are tracked per type so a whole type can be cleared at once after
// a sync run imports new data.
var (
	Cache                *ristretto.Cache
	TransactionCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
	AccountCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
)

func InitCache() error {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	return nil
}

func GetCache(cacheKey string) (interface{}, bool) {
	if Cache == nil {
		return nil, false
	}
	return Cache.Get(cacheKey)
}

// Transaction Cache Functions
func SetTransactionCache(cacheKey string, value interface{}) {
	if Cache == nil {
		return
	}
	TransactionCacheKeys.Lock()
	TransactionCacheKeys.m[cacheKey] = struct{}{}
	TransactionCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
	Cache.Wait()
}

func ClearAllTransactionCaches() {
	if Cache == nil {
		return
	}
	TransactionCacheKeys.Lock()
	for key := range TransactionCacheKeys.m {
		Cache.Del(key)
	}
	TransactionCacheKeys.m = make(map[string]struct{})
	TransactionCacheKeys.Unlock()
}

// Account Cache Functions
func SetAccountCache(cacheKey string, value interface{}) {
	if Cache == nil {
		return
	}
	AccountCacheKeys.Lock()
	AccountCacheKeys.m[cacheKey] = struct{}{}
	AccountCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
	Cache.Wait()
}

func ClearAllAccountCaches() {
	if Cache == nil {
		return
	}
	AccountCacheKeys.Lock()
	for key := range AccountCacheKeys.m {
		Cache.Del(key)
	}
	AccountCacheKeys.m = make(map[string]struct{})
	AccountCacheKeys.Unlock()
}

// ClearCache clears every entry of the named cache type.
func ClearCache(name string) error {
	switch name {
	case TransactionCacheName:
		ClearAllTransactionCaches()
	case AccountCacheName:
		ClearAllAccountCaches()
	case "all":
		ClearAllTransactionCaches()
		ClearAllAccountCaches()
	default:
		return fmt.Errorf("unknown cache %q", name)
	}
	return nil
}

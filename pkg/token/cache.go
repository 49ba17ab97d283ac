package token

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// defaultCacheSize bounds the resolver cache when none is configured.
const defaultCacheSize = 512

// Cache remembers resolved records per symbol and chain. Static table
// hits bypass it; only externally resolved records are stored.
type Cache struct {
	lru *lru.Cache
}

// NewCache creates an LRU cache holding up to size records.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = defaultCacheSize
	}
	// lru.New only fails on a non-positive size, which is handled above.
	c, err := lru.New(size)
	if err != nil {
		panic(err)
	}
	return &Cache{lru: c}
}

// Get returns the cached record for symbol on chainID, if any.
func (c *Cache) Get(symbol string, chainID int64) (*Record, bool) {
	v, ok := c.lru.Get(cacheKey(symbol, chainID))
	if !ok {
		return nil, false
	}
	rec := v.(Record)
	return &rec, true
}

// Put stores a resolved record. The record is copied; callers may not
// mutate cached entries afterwards.
func (c *Cache) Put(rec *Record) {
	c.lru.Add(cacheKey(rec.Symbol, rec.ChainID), *rec)
}

func cacheKey(symbol string, chainID int64) string {
	return fmt.Sprintf("%s@%d", NormalizeSymbol(symbol), chainID)
}

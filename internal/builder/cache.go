package builder

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/maypok86/otter"

	"github.com/vyper-tools/vyperdoc/internal/vyper"
)

// defaultCacheCapacity bounds the number of memoized contracts. Far
// larger than any realistic contracts directory.
const defaultCacheCapacity = 4096

// ContractCache memoizes extraction results so rebuilds skip files whose
// content did not change. Extraction is a pure function of (path, content),
// so a hit returns a contract identical to a fresh extraction.
type ContractCache struct {
	cache otter.Cache[string, *vyper.Contract]
}

// NewDefaultContractCache creates a cache with the default capacity.
func NewDefaultContractCache() (*ContractCache, error) {
	return NewContractCache(defaultCacheCapacity)
}

// NewContractCache creates a cache holding up to capacity contracts.
func NewContractCache(capacity int) (*ContractCache, error) {
	builder, err := otter.NewBuilder[string, *vyper.Contract](capacity)
	if err != nil {
		return nil, fmt.Errorf("invalid cache capacity: %w", err)
	}

	cache, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build contract cache: %w", err)
	}

	return &ContractCache{cache: cache}, nil
}

// CacheKey derives the cache key for a contract source: relative path plus
// content hash, so both edits and renames miss.
func CacheKey(relPath string, content []byte) string {
	sum := sha256.Sum256(content)
	return relPath + "@" + hex.EncodeToString(sum[:])
}

// Get returns the cached contract for a key, if present.
func (c *ContractCache) Get(key string) (*vyper.Contract, bool) {
	return c.cache.Get(key)
}

// Set stores a contract under the given key.
func (c *ContractCache) Set(key string, contract *vyper.Contract) {
	c.cache.Set(key, contract)
}

// Size returns the number of cached contracts.
func (c *ContractCache) Size() int {
	return c.cache.Size()
}

// Close releases the cache's internal resources.
func (c *ContractCache) Close() {
	c.cache.Close()
}

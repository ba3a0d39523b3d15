package slots

import (
	"context"
	"fmt"

	"github.com/pixpilot/arrayrows/internal/cachemanager"
	"github.com/pixpilot/arrayrows/internal/formtree"
)

const registryTTL = cachemanager.DefaultExpiration

type registryKey string

// cachedRegistry remembers the root it was built for so that a recycled
// pointer address is never served a stale registry.
type cachedRegistry struct {
	root *formtree.Node
	reg  Registry
}

// RegistryCache memoizes BuildRegistry by root identity. A reloaded schema is
// a new pointer and therefore a new entry; edits to unrelated fields reuse
// the cached registry.
type RegistryCache struct {
	cache *cachemanager.ReadThroughCache[registryKey, cachedRegistry, *formtree.Node]
}

// NewRegistryCache creates a cache that builds registries with defaults and nodes.
func NewRegistryCache(defaults Defaults, nodes NodeRenderer) *RegistryCache {
	mgr := cachemanager.NewInMemoryCacheManager[registryKey, cachedRegistry](
		"slot-registry", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	load := func(_ context.Context, root *formtree.Node) (cachedRegistry, error) {
		return cachedRegistry{root: root, reg: BuildRegistry(root, defaults, nodes)}, nil
	}
	return &RegistryCache{
		cache: cachemanager.NewReadThroughCache[registryKey, cachedRegistry, *formtree.Node](mgr, load, false),
	}
}

// Get returns the registry for root, building it on first use.
func (c *RegistryCache) Get(root *formtree.Node) Registry {
	ctx := context.Background()
	key := keyFor(root)
	v, _ := c.cache.Get(ctx, key, root, registryTTL)
	if v.root != root {
		_ = c.cache.Invalidate(ctx, key)
		v, _ = c.cache.Get(ctx, key, root, registryTTL)
	}
	return v.reg
}

// Forget drops the registry cached for root.
func (c *RegistryCache) Forget(root *formtree.Node) {
	_ = c.cache.Invalidate(context.Background(), keyFor(root))
}

func keyFor(root *formtree.Node) registryKey {
	return registryKey(fmt.Sprintf("%p", root))
}

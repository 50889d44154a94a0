package cache

import (
	"sort"
	"sync"

	"github.com/example/laundry-storefront/internal/domain"
)

// MemoryOrderCache заказы реестра по владельцам, без дублей по reference.
type MemoryOrderCache struct {
	mu      sync.RWMutex
	byOwner map[string]map[string]domain.Placement
}

func NewMemoryOrderCache() *MemoryOrderCache {
	return &MemoryOrderCache{byOwner: make(map[string]map[string]domain.Placement)}
}

// ByOwner заказы владельца, от старых к новым.
func (c *MemoryOrderCache) ByOwner(owner string) []domain.Placement {
	c.mu.RLock()
	defer c.mu.RUnlock()
	refs := c.byOwner[owner]
	out := make([]domain.Placement, 0, len(refs))
	for _, p := range refs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PlacedAt.Equal(out[j].PlacedAt) {
			return out[i].PlacedAt.Before(out[j].PlacedAt)
		}
		return out[i].Reference < out[j].Reference
	})
	return out
}

func (c *MemoryOrderCache) Put(p domain.Placement) {
	c.mu.Lock()
	refs, ok := c.byOwner[p.Owner]
	if !ok {
		refs = make(map[string]domain.Placement)
		c.byOwner[p.Owner] = refs
	}
	refs[p.Reference] = p
	c.mu.Unlock()
}

var _ domain.OrderCache = (*MemoryOrderCache)(nil)

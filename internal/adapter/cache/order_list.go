package cache

import (
	"sync"

	"github.com/example/laundry-storefront/internal/domain"
)

// OrderListCache последний ответ "мои заказы" на стороне витрины.
type OrderListCache struct {
	mu      sync.Mutex
	gen     uint64
	orders  []domain.PlacedOrder
	valid   bool
	pending []domain.PlacedOrder
}

func NewOrderListCache() *OrderListCache {
	return &OrderListCache{}
}

func (c *OrderListCache) Get() ([]domain.PlacedOrder, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid {
		return nil, false
	}
	return append([]domain.PlacedOrder(nil), c.orders...), true
}

func (c *OrderListCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Store возвращает ответ реестра вместе с ещё не записанными подтверждёнными
// заказами. Кэшируется только ответ текущего поколения без таких заказов.
func (c *OrderListCache) Store(gen uint64, fetched []domain.PlacedOrder) []domain.PlacedOrder {
	c.mu.Lock()
	defer c.mu.Unlock()

	known := make(map[string]struct{}, len(fetched))
	for _, o := range fetched {
		known[o.Reference] = struct{}{}
	}
	var waiting []domain.PlacedOrder
	for _, p := range c.pending {
		if _, ok := known[p.Reference]; !ok {
			waiting = append(waiting, p)
		}
	}
	c.pending = waiting

	merged := make([]domain.PlacedOrder, 0, len(fetched)+len(waiting))
	merged = append(merged, fetched...)
	merged = append(merged, waiting...)
	if gen == c.gen && len(waiting) == 0 {
		c.orders = append([]domain.PlacedOrder(nil), merged...)
		c.valid = true
	}
	return merged
}

func (c *OrderListCache) Invalidate() {
	c.mu.Lock()
	c.invalidateLocked()
	c.mu.Unlock()
}

// AddPending запоминает подтверждённый заказ до тех пор, пока реестр его не отдаст.
func (c *OrderListCache) AddPending(o domain.PlacedOrder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.pending {
		if p.Reference == o.Reference {
			c.invalidateLocked()
			return
		}
	}
	c.pending = append(c.pending, o)
	c.invalidateLocked()
}

func (c *OrderListCache) invalidateLocked() {
	c.gen++
	c.orders = nil
	c.valid = false
}

var _ domain.OrderListCache = (*OrderListCache)(nil)

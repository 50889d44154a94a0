// Package cart корзина сессии: чистое ядро CartState с сохранением при каждом изменении.
package cart

import (
	"context"
	"sync"

	"github.com/example/laundry-storefront/internal/domain"
	"go.uber.org/zap"
)

type Store struct {
	mu        sync.Mutex
	state     domain.CartState
	persister domain.CartPersister
	logger    *zap.Logger
}

// Open восстанавливает корзину из хранилища. Отсутствующая или битая запись даёт
// пустую корзину.
func Open(ctx context.Context, persister domain.CartPersister, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	state := persister.Load(ctx)
	if state == nil {
		state = domain.NewCartState()
	}
	logger.Debug("cart restored", zap.Int("lines", len(state)), zap.Int("units", domain.ItemCount(state)))
	return &Store{state: state, persister: persister, logger: logger}
}

func (s *Store) AddItem(ctx context.Context, category, item string, unitPrice domain.Money) {
	s.mutate(ctx, func(st domain.CartState) { st.Add(category, item, unitPrice) })
	s.logger.Debug("item added", zap.String("category", category), zap.String("item", item))
}

func (s *Store) RemoveItem(ctx context.Context, category, item string) {
	s.mutate(ctx, func(st domain.CartState) { st.Remove(category, item) })
	s.logger.Debug("item removed", zap.String("category", category), zap.String("item", item))
}

func (s *Store) SetQuantity(ctx context.Context, category, item string, quantity int) {
	s.mutate(ctx, func(st domain.CartState) { st.SetQuantity(category, item, quantity) })
	s.logger.Debug("quantity set",
		zap.String("category", category), zap.String("item", item), zap.Int("quantity", quantity))
}

// Clear очищает корзину и стирает сохранённую копию.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.NewCartState()
	s.persister.Clear(ctx)
	s.logger.Debug("cart cleared")
}

// mutate применяет fn и сохраняет до возврата.
func (s *Store) mutate(ctx context.Context, fn func(domain.CartState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
	s.persister.Save(ctx, s.state)
}

// Snapshot копия, на которую последующие изменения не влияют.
func (s *Store) Snapshot() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) Total() domain.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CartTotal(s.state)
}

func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ItemCount(s.state)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state)
}

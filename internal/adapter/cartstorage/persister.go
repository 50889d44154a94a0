package cartstorage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/example/laundry-storefront/internal/domain"
	"go.uber.org/zap"
)

// DefaultKey ключ, под которым витрина всегда хранила корзину.
const DefaultKey = "dar-alnasr-cart"

type storedItem struct {
	CategoryName string `json:"categoryName"`
	ItemName     string `json:"itemName"`
	Quantity     int    `json:"quantity"`
	UnitPrice    string `json:"unitPrice"`
}

// Persister хранит корзину в JSON под одним ключом. Это best-effort кэш:
// любая ошибка логируется и не пробрасывается.
type Persister struct {
	Store  domain.KeyValueStore
	Key    string
	Logger *zap.Logger
}

func NewPersister(store domain.KeyValueStore, key string, logger *zap.Logger) *Persister {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Persister{Store: store, Key: key, Logger: logger}
}

// Save пишет позиции JSON-массивом. Позиция определяется полями, а не склеенным
// строковым ключом, поэтому названия с "::" не пересекаются.
func (p *Persister) Save(ctx context.Context, state domain.CartState) {
	out := make([]storedItem, 0, len(state))
	for _, li := range state.Items() {
		out = append(out, storedItem{
			CategoryName: li.Category,
			ItemName:     li.Item,
			Quantity:     li.Quantity,
			UnitPrice:    li.UnitPrice.String(),
		})
	}
	raw, err := json.Marshal(out)
	if err != nil {
		p.Logger.Error("failed to encode cart", zap.Error(err))
		return
	}
	if err := p.Store.Set(ctx, p.Key, string(raw)); err != nil {
		p.Logger.Error("failed to save cart to storage", zap.String("key", p.Key), zap.Error(err))
	}
}

func (p *Persister) Load(ctx context.Context) domain.CartState {
	state := domain.NewCartState()
	raw, err := p.Store.Get(ctx, p.Key)
	if errors.Is(err, domain.ErrNotFound) {
		return state
	}
	if err != nil {
		p.Logger.Error("failed to load cart from storage", zap.String("key", p.Key), zap.Error(err))
		return state
	}
	if raw == "" {
		return state
	}

	stored, err := decode(raw)
	if err != nil {
		p.Logger.Error("stored cart is corrupt, starting empty", zap.String("key", p.Key), zap.Error(err))
		return state
	}
	for _, it := range stored {
		price, err := domain.ParseMoney(it.UnitPrice)
		if err != nil {
			p.Logger.Error("stored cart is corrupt, starting empty",
				zap.String("key", p.Key), zap.String("item", it.ItemName), zap.Error(err))
			return domain.NewCartState()
		}
		if it.Quantity < 1 {
			p.Logger.Warn("dropping stored cart line with no quantity",
				zap.String("category", it.CategoryName), zap.String("item", it.ItemName))
			continue
		}
		li := domain.CartLineItem{
			Category:  it.CategoryName,
			Item:      it.ItemName,
			Quantity:  it.Quantity,
			UnitPrice: price,
		}
		state[li.Key()] = li
	}
	return state
}

// decode понимает текущий массив и старый объект с ключами "<category>::<item>";
// ключи объекта игнорируются.
func decode(raw string) ([]storedItem, error) {
	var items []storedItem
	arrErr := json.Unmarshal([]byte(raw), &items)
	if arrErr == nil {
		return items, nil
	}
	var legacy map[string]storedItem
	if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
		return nil, arrErr
	}
	items = make([]storedItem, 0, len(legacy))
	for _, it := range legacy {
		items = append(items, it)
	}
	return items, nil
}

func (p *Persister) Clear(ctx context.Context) {
	if err := p.Store.Delete(ctx, p.Key); err != nil {
		p.Logger.Error("failed to clear cart storage", zap.String("key", p.Key), zap.Error(err))
	}
}

var _ domain.CartPersister = (*Persister)(nil)

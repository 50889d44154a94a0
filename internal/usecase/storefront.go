package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/example/laundry-storefront/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CartStore операции корзины, которые нужны сценариям витрины.
type CartStore interface {
	AddItem(ctx context.Context, category, item string, unitPrice domain.Money)
	Snapshot() domain.CartState
	Clear(ctx context.Context)
}

// BrowseCatalog получить актуальный прайс-лист. Всегда свежий: цены могут меняться.
type BrowseCatalog struct {
	Source domain.CatalogSource
}

func (uc BrowseCatalog) Execute(ctx context.Context) (domain.Catalog, error) {
	return uc.Source.GetCatalog(ctx)
}

// AddFromCatalog положить в корзину услугу по текущей цене прайс-листа.
type AddFromCatalog struct {
	Source domain.CatalogSource
	Cart   CartStore
}

func (uc AddFromCatalog) Execute(ctx context.Context, category, item string) (domain.CatalogItem, error) {
	catalog, err := uc.Source.GetCatalog(ctx)
	if err != nil {
		return domain.CatalogItem{}, fmt.Errorf("load catalog: %w", err)
	}
	it, ok := catalog.Lookup(category, item)
	if !ok {
		return domain.CatalogItem{}, fmt.Errorf("%q in %q: %w", item, category, domain.ErrNotFound)
	}
	uc.Cart.AddItem(ctx, category, it.Name, it.Price)
	return it, nil
}

// MyOrders история заказов с кэшем. Параллельные промахи кэша схлопываются в один запрос.
type MyOrders struct {
	History domain.OrderHistory
	Cache   domain.OrderListCache
	Logger  *zap.Logger

	sfg singleflight.Group
}

func (uc *MyOrders) Execute(ctx context.Context) ([]domain.PlacedOrder, error) {
	if orders, ok := uc.Cache.Get(); ok {
		return orders, nil
	}
	// запросы разных поколений не схлопываются: ответ, начатый до Invalidate, устарел
	gen := uc.Cache.Generation()
	v, err, _ := uc.sfg.Do("my-orders-"+strconv.FormatUint(gen, 10), func() (interface{}, error) {
		fetched, err := uc.History.GetMyOrders(ctx)
		if err != nil {
			return nil, err
		}
		return uc.Cache.Store(gen, fetched), nil
	})
	if err != nil {
		if uc.Logger != nil {
			uc.Logger.Warn("fetching order history failed", zap.Error(err))
		}
		return nil, err
	}
	return v.([]domain.PlacedOrder), nil
}

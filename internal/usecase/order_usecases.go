package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/laundry-storefront/internal/domain"
	"go.uber.org/zap"
)

// GetOrdersByOwner отдать заказы владельца из кэша реестра.
type GetOrdersByOwner struct {
	Cache domain.OrderCache
}

func (uc GetOrdersByOwner) Execute(owner string) []domain.PlacedOrder {
	placements := uc.Cache.ByOwner(owner)
	out := make([]domain.PlacedOrder, 0, len(placements))
	for _, p := range placements {
		out = append(out, p.Placed())
	}
	return out
}

// GetCatalog отдать прайс-лист.
type GetCatalog struct {
	Repo domain.CatalogRepository
}

func (uc GetCatalog) Execute(ctx context.Context) (domain.Catalog, error) {
	return uc.Repo.ListCatalog(ctx)
}

// LoadCache загрузить все заказы из репозитория в кэш при старте.
type LoadCache struct {
	Repo   domain.OrderRepository
	Cache  domain.OrderCache
	Logger *zap.Logger
}

func (uc LoadCache) Execute(ctx context.Context) error {
	logger := uc.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return uc.Repo.LoadAll(ctx, func(ref string, raw []byte) error {
		var p domain.Placement
		if err := json.Unmarshal(raw, &p); err != nil {
			// пропускаем битые записи, не прерывая полную загрузку
			logger.Warn("skipping unreadable order", zap.String("reference", ref), zap.Error(err))
			return nil
		}
		uc.Cache.Put(p)
		return nil
	})
}

// ProcessIncomingOrder проверить входящий заказ, сохранить и обновить кэш.
// Повторная доставка с тем же reference перезаписывает ту же строку.
type ProcessIncomingOrder struct {
	Repo  domain.OrderRepository
	Cache domain.OrderCache
}

func (uc ProcessIncomingOrder) Execute(ctx context.Context, raw []byte) error {
	var p domain.Placement
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := uc.Repo.Upsert(ctx, p); err != nil {
		return err
	}
	uc.Cache.Put(p)
	return nil
}

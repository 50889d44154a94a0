package domain

import "context"

// KeyValueStore долговременное локальное хранилище строк по строковому ключу.
// Get возвращает ErrNotFound для отсутствующего ключа, Delete идемпотентен.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// CartPersister сохраняет корзину по принципу best-effort: ошибки не возвращаются.
type CartPersister interface {
	Save(ctx context.Context, state CartState)
	Load(ctx context.Context) CartState
	Clear(ctx context.Context)
}

// CatalogSource порт чтения прайс-листа.
type CatalogSource interface {
	GetCatalog(ctx context.Context) (Catalog, error)
}

// OrderPlacer порт отправки заказа. Блокирует до подтверждения реестром.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, p Placement) error
}

// OrderHistory порт чтения истории заказов текущего владельца.
type OrderHistory interface {
	GetMyOrders(ctx context.Context) ([]PlacedOrder, error)
}

// OrderListCache кэш результата GetMyOrders на стороне витрины.
// Каждое Invalidate увеличивает поколение, и Store кэширует ответ реестра только
// для поколения, в котором начался запрос. Заказы из AddPending подмешиваются к
// ответам, пока реестр не вернёт их сам; до этого ответ не кэшируется.
type OrderListCache interface {
	Get() ([]PlacedOrder, bool)
	Generation() uint64
	Store(gen uint64, fetched []PlacedOrder) []PlacedOrder
	Invalidate()
	AddPending(o PlacedOrder)
}

// OrderRepository порт для операций персистентности заказов в реестре.
type OrderRepository interface {
	Upsert(ctx context.Context, p Placement) error
	LoadAll(ctx context.Context, fn func(reference string, raw []byte) error) error
}

// CatalogRepository порт хранения прайс-листа в реестре.
type CatalogRepository interface {
	ListCatalog(ctx context.Context) (Catalog, error)
}

// OrderCache порт быстрого доступа к заказам по владельцу (кэш реестра).
type OrderCache interface {
	ByOwner(owner string) []Placement
	Put(p Placement)
}

// MessageSubscriber порт подписчика на входящие сообщения заказов.
type MessageSubscriber interface {
	// Subscribe регистрирует обработчик; ack/повторные доставки реализует адаптер.
	Subscribe(ctx context.Context, handler func(ctx context.Context, raw []byte) error) error
}

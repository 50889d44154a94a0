package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/example/laundry-storefront/internal/adapter/cache"
	"github.com/example/laundry-storefront/internal/adapter/cartstorage"
	"github.com/example/laundry-storefront/internal/adapter/kvstore"
	"github.com/example/laundry-storefront/internal/cart"
	"github.com/example/laundry-storefront/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type mockPlacer struct {
	m       sync.Mutex
	err     error
	placed  []domain.Placement
	release chan struct{}
}

func (m *mockPlacer) PlaceOrder(ctx context.Context, p domain.Placement) error {
	if m.release != nil {
		<-m.release
	}
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.placed = append(m.placed, p)
	return nil
}

func (m *mockPlacer) calls() []domain.Placement {
	m.m.Lock()
	defer m.m.Unlock()
	return append([]domain.Placement(nil), m.placed...)
}

func form() domain.CheckoutForm {
	return domain.CheckoutForm{
		Name:          "Layla",
		Phone:         "+971 50 123 4567",
		PickupAddress: "Villa 7, Al Nahda",
		SameAsPickup:  true,
		PickupDate:    "2026-10-20",
		PickupTime:    "09:00",
		Notes:         "ring twice",
	}
}

type fixture struct {
	kv     *kvstore.MemoryStore
	store  *cart.Store
	placer *mockPlacer
	orders *cache.OrderListCache
	sut    *Checkout
}

func newFixture(t *testing.T) *fixture {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)
	kv := kvstore.NewMemoryStore()
	store := cart.Open(ctx, cartstorage.NewPersister(kv, "", logger), logger)
	store.AddItem(ctx, "Laundry", "A", domain.NewMoney(10))
	store.AddItem(ctx, "Laundry", "A", domain.NewMoney(10))
	store.AddItem(ctx, "Laundry", "B", domain.NewMoney(25))

	placer := &mockPlacer{}
	orders := cache.NewOrderListCache()
	orders.Store(orders.Generation(), nil)

	sut := NewCheckout(store, placer, orders, "owner-1", logger)
	sut.NewReference = func() string { return "ref-1" }
	sut.Now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	return &fixture{kv: kv, store: store, placer: placer, orders: orders, sut: sut}
}

func TestCheckout_Success(t *testing.T) {
	f := newFixture(t)

	conf, err := f.sut.Submit(context.Background(), form())
	require.NoError(t, err)

	assert.Equal(t, "ref-1", conf.Reference)
	assert.Equal(t, "45", conf.Order.TotalPrice().String())
	assert.Equal(t, "Villa 7, Al Nahda", conf.Order.DeliveryAddress())
	assert.Equal(t, PhaseCleared, f.sut.Phase())
	assert.NoError(t, f.sut.LastError())

	calls := f.placer.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "owner-1", calls[0].Owner)
	assert.Equal(t, "Layla", calls[0].Contact.Name)
	assert.Equal(t, "ring twice", calls[0].Contact.Notes)
	assert.Len(t, calls[0].Order.Items(), 2)

	assert.Equal(t, 0, f.store.Len())
	_, err = f.kv.Get(context.Background(), cartstorage.DefaultKey)
	assert.ErrorIs(t, err, domain.ErrNotFound, "stored cart must be erased")

	_, cached := f.orders.Get()
	assert.False(t, cached, "order list cache must be invalidated")
}

func TestCheckout_OrderVisibleBeforeLedgerRecordsIt(t *testing.T) {
	f := newFixture(t)
	_, err := f.sut.Submit(context.Background(), form())
	require.NoError(t, err)

	// the ledger consumes placements asynchronously and has not stored this one yet
	h := &mockHistory{}
	uc := &MyOrders{History: h, Cache: f.orders}
	got, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ref-1", got[0].Reference)
	assert.Equal(t, "45", got[0].Order.TotalPrice().String())

	_, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), h.calls.Load(), "history lacking the confirmed order is refetched")

	h.orders = got
	_, err = uc.Execute(context.Background())
	require.NoError(t, err)
	_, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), h.calls.Load(), "cached once the ledger returns it")
}

func TestCheckout_CancelledCallerClearsRedisCart(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	logger := zaptest.NewLogger(t)
	kv := kvstore.NewRedisStore(client)

	store := cart.Open(context.Background(), cartstorage.NewPersister(kv, "", logger), logger)
	store.AddItem(context.Background(), "Laundry", "A", domain.NewMoney(10))

	placer := &mockPlacer{release: make(chan struct{})}
	sut := NewCheckout(store, placer, cache.NewOrderListCache(), "owner-1", logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := sut.Submit(ctx, form())
		done <- err
	}()
	require.Eventually(t, func() bool {
		return sut.Phase() == PhaseSubmitting
	}, time.Second, 5*time.Millisecond)

	cancel()
	close(placer.release)
	require.NoError(t, <-done)
	require.Len(t, placer.calls(), 1)

	restored := cart.Open(context.Background(), cartstorage.NewPersister(kv, "", logger), logger)
	assert.Equal(t, 0, restored.Len(), "a placed order must not come back on the next session")
}

func TestCheckout_PlacementFailureKeepsCart(t *testing.T) {
	f := newFixture(t)
	f.placer.err = errors.New("ledger unavailable")
	before := f.store.Snapshot()

	_, err := f.sut.Submit(context.Background(), form())
	require.ErrorContains(t, err, "ledger unavailable")

	assert.Equal(t, PhaseIdle, f.sut.Phase())
	assert.Equal(t, err, f.sut.LastError())
	assert.Equal(t, before, f.store.Snapshot())
	_, cached := f.orders.Get()
	assert.True(t, cached, "cache untouched on failure")

	// the user retries by hand
	f.placer.err = nil
	_, err = f.sut.Submit(context.Background(), form())
	require.NoError(t, err)
	assert.Len(t, f.placer.calls(), 1)
}

func TestCheckout_InvalidFormNeverPlaces(t *testing.T) {
	f := newFixture(t)
	bad := form()
	bad.Phone = ""
	bad.SameAsPickup = false

	_, err := f.sut.Submit(context.Background(), bad)
	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "phone")
	assert.Contains(t, fe, "deliveryAddress")
	assert.Equal(t, PhaseIdle, f.sut.Phase())
	assert.Empty(t, f.placer.calls())
	assert.Equal(t, 3, f.store.ItemCount())
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newFixture(t)
	f.store.Clear(context.Background())

	_, err := f.sut.Submit(context.Background(), form())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, f.placer.calls())
	assert.Equal(t, PhaseIdle, f.sut.Phase())
}

func TestCheckout_RejectsConcurrentSubmit(t *testing.T) {
	f := newFixture(t)
	f.placer.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := f.sut.Submit(context.Background(), form())
		done <- err
	}()

	require.Eventually(t, func() bool {
		return f.sut.Phase() == PhaseSubmitting
	}, time.Second, 5*time.Millisecond)

	_, err := f.sut.Submit(context.Background(), form())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(f.placer.release)
	require.NoError(t, <-done)
	assert.Len(t, f.placer.calls(), 1)
}

func TestCheckout_CancelledCallerStillCompletes(t *testing.T) {
	f := newFixture(t)
	f.placer.release = make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := f.sut.Submit(ctx, form())
		done <- err
	}()
	require.Eventually(t, func() bool {
		return f.sut.Phase() == PhaseSubmitting
	}, time.Second, 5*time.Millisecond)

	cancel()
	close(f.placer.release)
	require.NoError(t, <-done)
	assert.Equal(t, 0, f.store.Len())
}

func TestCheckoutPhase_String(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "submitting", PhaseSubmitting.String())
	assert.Equal(t, "unknown", CheckoutPhase(42).String())
}

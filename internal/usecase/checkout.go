package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/example/laundry-storefront/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSubmissionInFlight: Submit вызван, пока предыдущая отправка не завершилась.
var ErrSubmissionInFlight = errors.New("order submission already in progress")

type CheckoutPhase int

const (
	PhaseIdle CheckoutPhase = iota
	PhaseValidating
	PhaseSubmitting
	PhaseCleared
)

func (p CheckoutPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseSubmitting:
		return "submitting"
	case PhaseCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Confirmation результат успешного оформления для показа пользователю.
type Confirmation struct {
	Reference string
	Order     domain.Order
}

// Checkout оформление заказа из корзины. Заказ отправляется ровно один раз: при ошибке
// корзина остаётся нетронутой, и пользователь повторяет попытку сам.
type Checkout struct {
	Cart   CartStore
	Placer domain.OrderPlacer
	Orders domain.OrderListCache
	Owner  string
	Logger *zap.Logger

	NewReference func() string
	Now          func() time.Time

	mu      sync.Mutex
	phase   CheckoutPhase
	lastErr error
}

func NewCheckout(cart CartStore, placer domain.OrderPlacer, orders domain.OrderListCache, owner string, logger *zap.Logger) *Checkout {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checkout{
		Cart:         cart,
		Placer:       placer,
		Orders:       orders,
		Owner:        owner,
		Logger:       logger,
		NewReference: uuid.NewString,
		Now:          time.Now,
	}
}

func (c *Checkout) Phase() CheckoutPhase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// LastError ошибка последнего Submit, nil после успеха.
func (c *Checkout) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Checkout) Submit(ctx context.Context, form domain.CheckoutForm) (Confirmation, error) {
	c.mu.Lock()
	if c.phase == PhaseValidating || c.phase == PhaseSubmitting {
		c.mu.Unlock()
		return Confirmation{}, ErrSubmissionInFlight
	}
	c.phase = PhaseValidating
	c.lastErr = nil
	c.mu.Unlock()

	if err := form.Validate(); err != nil {
		c.finish(PhaseIdle, err)
		return Confirmation{}, err
	}

	order, err := domain.BuildOrder(c.Cart.Snapshot(), form.EffectiveDeliveryAddress())
	if err != nil {
		err = fmt.Errorf("cannot place order: %w", err)
		c.finish(PhaseIdle, err)
		return Confirmation{}, err
	}

	p := domain.Placement{
		Reference: c.NewReference(),
		Owner:     c.Owner,
		PlacedAt:  c.Now().UTC(),
		Contact:   form.Contact(),
		Order:     order,
	}

	c.setPhase(PhaseSubmitting)
	// отправленный заказ доводится до конца, даже если вызывающий ушёл
	if err := c.Placer.PlaceOrder(context.WithoutCancel(ctx), p); err != nil {
		c.Logger.Error("order placement failed, cart kept for retry",
			zap.String("reference", p.Reference), zap.Error(err))
		err = fmt.Errorf("place order: %w", err)
		c.finish(PhaseIdle, err)
		return Confirmation{}, err
	}

	// заказ принят: корзина стирается и из хранилища, даже если вызывающий уже ушёл
	c.Cart.Clear(context.WithoutCancel(ctx))
	c.Orders.AddPending(p.Placed())
	c.Logger.Info("order placed",
		zap.String("reference", p.Reference),
		zap.String("total", order.TotalPrice().String()),
		zap.Int("lines", len(order.Items())))
	c.finish(PhaseCleared, nil)
	return Confirmation{Reference: p.Reference, Order: order}, nil
}

func (c *Checkout) setPhase(p CheckoutPhase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
}

func (c *Checkout) finish(p CheckoutPhase, err error) {
	c.mu.Lock()
	c.phase = p
	c.lastErr = err
	c.mu.Unlock()
}

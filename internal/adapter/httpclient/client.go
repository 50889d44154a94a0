package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/example/laundry-storefront/internal/domain"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// ErrUnavailable оборачивает ошибки обращения к реестру, включая открытый breaker.
var ErrUnavailable = errors.New("ledger unavailable")

// Client читает прайс-лист и историю заказов из реестра через circuit breaker.
// Отправка заказов через этот клиент не идёт.
type Client struct {
	BaseURL *url.URL
	HTTP    *http.Client
	Owner   string
	Logger  *zap.Logger

	breaker *gobreaker.CircuitBreaker[[]byte]
}

func New(baseURL, owner string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ledger base url %q: %w", baseURL, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		BaseURL: u,
		HTTP:    &http.Client{Timeout: timeout},
		Owner:   owner,
		Logger:  logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "ledger",
		MaxRequests: 1,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})
	return c, nil
}

func (c *Client) GetCatalog(ctx context.Context) (domain.Catalog, error) {
	body, err := c.get(ctx, c.BaseURL.JoinPath("api", "catalog"))
	if err != nil {
		return nil, err
	}
	var catalog domain.Catalog
	if err := json.Unmarshal(body, &catalog); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return catalog, nil
}

func (c *Client) GetMyOrders(ctx context.Context) ([]domain.PlacedOrder, error) {
	// JoinPath принимает экранированные сегменты
	body, err := c.get(ctx, c.BaseURL.JoinPath("api", "orders", url.PathEscape(c.Owner)))
	if err != nil {
		return nil, err
	}
	var orders []domain.PlacedOrder
	if err := json.Unmarshal(body, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (c *Client) get(ctx context.Context, u *url.URL) ([]byte, error) {
	path := u.Path
	body, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		resp, err := c.HTTP.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
		}
		return b, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return body, nil
}

var (
	_ domain.CatalogSource = (*Client)(nil)
	_ domain.OrderHistory  = (*Client)(nil)
)

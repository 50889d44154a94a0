package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/laundry-storefront/internal/adapter/cache"
	"github.com/example/laundry-storefront/internal/adapter/cartstorage"
	"github.com/example/laundry-storefront/internal/adapter/httpclient"
	"github.com/example/laundry-storefront/internal/adapter/kvstore"
	"github.com/example/laundry-storefront/internal/adapter/natsstan"
	"github.com/example/laundry-storefront/internal/cart"
	"github.com/example/laundry-storefront/internal/config"
	"github.com/example/laundry-storefront/internal/domain"
	"github.com/example/laundry-storefront/internal/usecase"
	stan "github.com/nats-io/stan.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger, err := cfg.NewLogger()
	if err != nil {
		panic(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := report(os.Stderr, run(ctx, cfg, logger, os.Args[1:]))
	cancel()
	logger.Sync()
	os.Exit(code)
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger, args []string) error {
	store, closeStore := openStorage(cfg, logger)
	defer closeStore()

	ledger, err := httpclient.New(cfg.LedgerURL, cfg.Owner, cfg.LedgerTimeout, logger)
	if err != nil {
		return err
	}
	placer := &lazyPublisher{cfg: cfg, logger: logger}
	defer placer.Close()

	cartStore := cart.Open(ctx, cartstorage.NewPersister(store, cfg.CartStorageKey, logger), logger)
	orders := cache.NewOrderListCache()
	a := &app{
		cart:      cartStore,
		catalog:   ledger,
		checkout:  usecase.NewCheckout(cartStore, placer, orders, cfg.Owner, logger),
		myOrders:  &usecase.MyOrders{History: ledger, Cache: orders, Logger: logger},
		formatter: domain.Formatter{CurrencyCode: cfg.CurrencyCode},
		out:       os.Stdout,
	}
	return a.run(ctx, args)
}

// openStorage выбирает redis, если он настроен, иначе локальный файл состояния.
func openStorage(cfg config.Config, logger *zap.Logger) (domain.KeyValueStore, func()) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		logger.Debug("cart storage: redis", zap.String("addr", cfg.RedisAddr))
		return kvstore.NewRedisStore(client), func() { client.Close() }
	}
	logger.Debug("cart storage: file", zap.String("path", cfg.StateFile))
	return kvstore.NewFileStore(cfg.StateFile), func() {}
}

// lazyPublisher подключается к NATS streaming при первой отправке, чтобы команды
// корзины работали без доступа к реестру.
type lazyPublisher struct {
	cfg    config.Config
	logger *zap.Logger
	conn   stan.Conn
}

func (l *lazyPublisher) PlaceOrder(ctx context.Context, p domain.Placement) error {
	if l.conn == nil {
		conn, err := natsstan.Connect(l.cfg.StanClusterID, l.cfg.StanClientID, l.cfg.NatsURL)
		if err != nil {
			return fmt.Errorf("connect to ledger: %w", err)
		}
		l.conn = conn
	}
	return natsstan.NewPublisher(l.conn, l.cfg.StanSubject, l.logger).PlaceOrder(ctx, p)
}

func (l *lazyPublisher) Close() {
	if l.conn != nil {
		l.conn.Close()
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/laundry-storefront/internal/adapter/cache"
	"github.com/example/laundry-storefront/internal/adapter/httpapi"
	"github.com/example/laundry-storefront/internal/adapter/natsstan"
	"github.com/example/laundry-storefront/internal/adapter/repo"
	"github.com/example/laundry-storefront/internal/config"
	"github.com/example/laundry-storefront/internal/usecase"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger, err := cfg.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := repo.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("init schema", zap.Error(err))
	}

	orderRepo := repo.NewPostgresRepo(pool)
	if err := orderRepo.SeedCatalog(ctx, repo.DefaultCatalog); err != nil {
		logger.Fatal("seed catalog", zap.Error(err))
	}

	orderCache := cache.NewMemoryOrderCache()
	if err := (usecase.LoadCache{Repo: orderRepo, Cache: orderCache, Logger: logger}).Execute(ctx); err != nil {
		logger.Fatal("load cache", zap.Error(err))
	}

	sub := &natsstan.Subscriber{
		ClusterID: cfg.StanClusterID,
		ClientID:  cfg.StanClientID,
		URL:       cfg.NatsURL,
		Subject:   cfg.StanSubject,
		Durable:   cfg.StanDurable,
		Logger:    logger,
	}
	process := usecase.ProcessIncomingOrder{Repo: orderRepo, Cache: orderCache}
	if err := sub.Subscribe(ctx, func(ctx context.Context, raw []byte) error {
		if err := process.Execute(ctx, raw); err != nil {
			return err
		}
		logger.Info("processed order")
		return nil
	}); err != nil {
		logger.Fatal("stan subscribe", zap.Error(err))
	}

	api := httpapi.NewServer(
		usecase.GetOrdersByOwner{Cache: orderCache},
		usecase.GetCatalog{Repo: orderRepo},
		logger,
	)
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: api.Router}
	go func() {
		logger.Info("http listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = srv.Shutdown(shutdownCtx)
}

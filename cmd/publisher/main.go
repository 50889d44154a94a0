package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/example/laundry-storefront/internal/adapter/natsstan"
	"github.com/example/laundry-storefront/internal/config"
	"github.com/example/laundry-storefront/internal/domain"
	"go.uber.org/zap"
)

// publisher отправляет в канал реестра один заказ, прочитанный из stdin.
func main() {
	cfg := config.Load()
	logger, err := cfg.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	var p domain.Placement
	dec := json.NewDecoder(os.Stdin)
	if err := dec.Decode(&p); err != nil {
		logger.Fatal("read placement json from stdin", zap.Error(err))
	}
	if err := p.Validate(); err != nil {
		logger.Fatal("invalid placement", zap.Error(err))
	}

	clientID := cfg.StanClientID
	if clientID == "" {
		clientID = "ledger-publisher"
	}
	sc, err := natsstan.Connect(cfg.StanClusterID, clientID, cfg.NatsURL)
	if err != nil {
		logger.Fatal("stan connect", zap.Error(err))
	}
	defer sc.Close()

	if err := natsstan.NewPublisher(sc, cfg.StanSubject, logger).PlaceOrder(context.Background(), p); err != nil {
		logger.Fatal("publish", zap.Error(err))
	}
}

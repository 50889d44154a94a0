package natsstan

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/laundry-storefront/internal/domain"
	stan "github.com/nats-io/stan.go"
	"go.uber.org/zap"
)

// publishConn часть stan.Conn, нужная издателю.
type publishConn interface {
	Publish(subject string, data []byte) error
}

// Publisher отправляет заказы в реестр. Publish блокирует до подтверждения от
// streaming-сервера; этого подтверждения и ждёт PlaceOrder.
type Publisher struct {
	conn    publishConn
	Subject string
	Logger  *zap.Logger
}

func NewPublisher(conn publishConn, subject string, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{conn: conn, Subject: subject, Logger: logger}
}

// Connect открывает streaming-соединение для отправки.
func Connect(clusterID, clientID, url string) (stan.Conn, error) {
	if clientID == "" {
		clientID = fmt.Sprintf("storefront-%d", time.Now().UnixNano())
	}
	return stan.Connect(clusterID, clientID, stan.NatsURL(url), stan.PubAckWait(10*time.Second))
}

func (p *Publisher) PlaceOrder(ctx context.Context, pl domain.Placement) error {
	if err := pl.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(pl)
	if err != nil {
		return fmt.Errorf("encode placement: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.conn.Publish(p.Subject, raw); err != nil {
		return fmt.Errorf("publish to %s: %w", p.Subject, err)
	}
	p.Logger.Info("placement published",
		zap.String("subject", p.Subject), zap.String("reference", pl.Reference), zap.Int("bytes", len(raw)))
	return nil
}

var _ domain.OrderPlacer = (*Publisher)(nil)

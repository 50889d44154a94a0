package natsstan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/laundry-storefront/internal/domain"
	stan "github.com/nats-io/stan.go"
	"go.uber.org/zap"
)

const (
	defaultQueue   = "ledger-workers"
	handlerTimeout = 5 * time.Second
	ackWait        = 10 * time.Second
)

// Subscriber доставляет заказы реестру из durable queue-подписки.
type Subscriber struct {
	ClusterID string
	ClientID  string
	URL       string
	Subject   string
	Durable   string
	Queue     string
	Logger    *zap.Logger
}

func (s *Subscriber) Subscribe(ctx context.Context, handler func(ctx context.Context, raw []byte) error) error {
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	clientID := s.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("ledger-svc-%d", time.Now().UnixNano())
	}
	queue := s.Queue
	if queue == "" {
		queue = defaultQueue
	}

	conn, err := stan.Connect(s.ClusterID, clientID,
		stan.NatsURL(s.URL),
		stan.SetConnectionLostHandler(func(_ stan.Conn, reason error) {
			s.Logger.Error("streaming connection lost", zap.Error(reason))
		}))
	if err != nil {
		return fmt.Errorf("connect to %s: %w", s.URL, err)
	}
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	_, err = conn.QueueSubscribe(s.Subject, queue,
		func(m *stan.Msg) { s.deliver(m, handler) },
		stan.DurableName(s.Durable),
		stan.SetManualAckMode(),
		stan.AckWait(ackWait),
		stan.DeliverAllAvailable())
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", s.Subject, err)
	}
	s.Logger.Info("subscribed", zap.String("subject", s.Subject), zap.String("queue", queue), zap.String("durable", s.Durable))
	return nil
}

func (s *Subscriber) deliver(m *stan.Msg, handler func(ctx context.Context, raw []byte) error) {
	s.process(m.Data, m.Sequence, m.Ack, handler)
}

// process подтверждает сообщение, когда заказ сохранён. Временные ошибки оставляют
// его неподтверждённым до повторной доставки через ackWait; заказ, не прошедший
// проверку, не исправится никогда, поэтому подтверждается и отбрасывается.
// Возвращает, было ли сообщение подтверждено.
func (s *Subscriber) process(data []byte, seq uint64, ack func() error, handler func(ctx context.Context, raw []byte) error) bool {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	err := handler(ctx, data)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation):
		s.Logger.Warn("dropping invalid placement", zap.Uint64("sequence", seq), zap.Error(err))
	default:
		s.Logger.Warn("placement not stored, awaiting redelivery", zap.Uint64("sequence", seq), zap.Error(err))
		return false
	}
	if err := ack(); err != nil {
		s.Logger.Error("ack failed", zap.Uint64("sequence", seq), zap.Error(err))
		return false
	}
	return true
}

var _ domain.MessageSubscriber = (*Subscriber)(nil)

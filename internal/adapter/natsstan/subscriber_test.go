package natsstan

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/example/laundry-storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSubscriber_AckPolicy(t *testing.T) {
	tests := []struct {
		name       string
		handlerErr error
		ackErr     error
		wantAcks   int
		wantAcked  bool
		wantLog    string
	}{
		{name: "stored", wantAcks: 1, wantAcked: true},
		{name: "invalid placement is dropped", handlerErr: fmt.Errorf("%w: missing owner", domain.ErrValidation),
			wantAcks: 1, wantAcked: true, wantLog: "dropping invalid placement"},
		{name: "tampered total is dropped", handlerErr: domain.ErrTotalMismatch,
			wantAcks: 1, wantAcked: true, wantLog: "dropping invalid placement"},
		{name: "storage failure is redelivered", handlerErr: errors.New("db down"),
			wantAcks: 0, wantAcked: false, wantLog: "placement not stored, awaiting redelivery"},
		{name: "ack failure", ackErr: errors.New("connection closed"),
			wantAcks: 1, wantAcked: false, wantLog: "ack failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			s := &Subscriber{Logger: zap.New(core)}

			var got []byte
			handler := func(ctx context.Context, raw []byte) error {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				got = raw
				return tt.handlerErr
			}
			acks := 0
			ack := func() error {
				acks++
				return tt.ackErr
			}

			acked := s.process([]byte(`{"reference":"r1"}`), 7, ack, handler)
			assert.Equal(t, tt.wantAcked, acked)
			assert.Equal(t, tt.wantAcks, acks)
			assert.JSONEq(t, `{"reference":"r1"}`, string(got))
			if tt.wantLog == "" {
				assert.Zero(t, logs.Len())
				return
			}
			entries := logs.FilterMessage(tt.wantLog).All()
			if assert.Len(t, entries, 1) {
				assert.EqualValues(t, 7, entries[0].ContextMap()["sequence"])
			}
		})
	}
}

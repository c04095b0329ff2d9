package test

import (
	"context"
	"net/http"
	"sync"

	"github.com/palletworks/portal/internal/adapter/workflow"
	"github.com/palletworks/portal/internal/notify"
)

// RelayClientStub records relayed payloads for assertions.
type RelayClientStub struct {
	RelayFn func(context.Context, any, string) (*workflow.Receipt, error)

	mu       sync.Mutex
	Payloads []any
	Keys     []string
}

func (s *RelayClientStub) Relay(ctx context.Context, payload any, idempotencyKey string) (*workflow.Receipt, error) {
	s.mu.Lock()
	s.Payloads = append(s.Payloads, payload)
	s.Keys = append(s.Keys, idempotencyKey)
	s.mu.Unlock()

	if s.RelayFn != nil {
		return s.RelayFn(ctx, payload, idempotencyKey)
	}
	return &workflow.Receipt{IdempotencyKey: idempotencyKey, UpstreamStatus: http.StatusOK}, nil
}

// NotifierStub captures enqueued notifications.
type NotifierStub struct {
	mu       sync.Mutex
	Messages []notify.Message
}

func (s *NotifierStub) Enqueue(msg notify.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = append(s.Messages, msg)
}

// Sent returns a snapshot of captured messages.
func (s *NotifierStub) Sent() []notify.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notify.Message, len(s.Messages))
	copy(out, s.Messages)
	return out
}

// SenderStub records messages handed to a notification sender.
type SenderStub struct {
	SendFn func(context.Context, notify.Message) error

	mu       sync.Mutex
	Messages []notify.Message
}

func (s *SenderStub) Send(ctx context.Context, msg notify.Message) error {
	s.mu.Lock()
	s.Messages = append(s.Messages, msg)
	s.mu.Unlock()

	if s.SendFn != nil {
		return s.SendFn(ctx, msg)
	}
	return nil
}
